package lungviz

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// svgUnits is the number of user units per output pixel. Coordinates are
// written as integers in a viewBox this much finer than the canvas.
const svgUnits = 10

// EncodeSVG writes the scene as an SVG document sized to the canvas.
func EncodeSVG(w io.Writer, scene Scene, canvas Canvas) error {
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Startview(canvas.Width, canvas.Height, 0, 0, canvas.Width*svgUnits, canvas.Height*svgUnits)
	doc.Desc(fmt.Sprintf("lung health %.1f%%, %s damage", scene.Health, scene.Stage))
	for _, sh := range scene.Shapes {
		writeShape(doc, canvas, sh)
	}
	doc.End()
	return ew.err
}

func writeShape(doc *svg.SVG, canvas Canvas, sh Shape) {
	style := svgStyle(sh, canvas)
	switch sh.Kind {
	case KindLine:
		x1, y1 := canvas.Project(sh.From)
		x2, y2 := canvas.Project(sh.To)
		doc.Line(px(x1), px(y1), px(x2), px(y2), style)
	case KindCircle:
		x, y := canvas.Project(sh.Center)
		doc.Circle(px(x), px(y), radius(canvas.Length(sh.RX)), style)
	case KindEllipse:
		x, y := canvas.Project(sh.Center)
		cx, cy := px(x), px(y)
		if sh.Rotation != 0 {
			doc.Gtransform(fmt.Sprintf("rotate(%.2f %d %d)", -sh.Rotation, cx, cy))
			defer doc.Gend()
		}
		doc.Ellipse(cx, cy, radius(canvas.Length(sh.RX)), radius(canvas.Length(sh.RY)), style)
	case KindPolygon:
		xs := make([]int, len(sh.Points))
		ys := make([]int, len(sh.Points))
		for i, p := range sh.Points {
			x, y := canvas.Project(p)
			xs[i], ys[i] = px(x), px(y)
		}
		doc.Polygon(xs, ys, style)
	}
}

func svgStyle(sh Shape, canvas Canvas) string {
	var b strings.Builder
	alpha := sh.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	if sh.Kind == KindLine || sh.Fill.A == 0 {
		b.WriteString("fill:none")
	} else {
		fmt.Fprintf(&b, "fill:%s;fill-opacity:%.2f", HexString(sh.Fill), alpha)
	}
	if sh.Stroke.A > 0 && sh.StrokeWidth > 0 {
		fmt.Fprintf(&b, ";stroke:%s;stroke-opacity:%.2f;stroke-width:%.2f",
			HexString(sh.Stroke), alpha, canvas.PointWidth(sh.StrokeWidth)*svgUnits)
		if sh.Kind == KindLine {
			b.WriteString(";stroke-linecap:square")
		}
	}
	return b.String()
}

func px(v float64) int { return int(math.Round(v * svgUnits)) }

// radius keeps positive radii visible after rounding.
func radius(v float64) int {
	if v <= 0 {
		return 0
	}
	return max(px(v), 1)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
