package lungviz

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"
)

// Default canvas size: a five inch figure at 100 dpi.
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// MaxCanvasSide caps either canvas dimension.
const MaxCanvasSide = 4096

// Canvas maps scene units to pixels. The 10x10 scene is scaled uniformly to
// fit the shorter side and centred on the longer one.
type Canvas struct {
	Width, Height int

	scale      float64
	offX, offY float64
}

// NewCanvas normalises the requested size, falling back to the defaults for
// non-positive dimensions and capping each side at MaxCanvasSide.
func NewCanvas(width, height int) Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	width, height = min(width, MaxCanvasSide), min(height, MaxCanvasSide)
	side := float64(min(width, height))
	return Canvas{
		Width:  width,
		Height: height,
		scale:  side / SceneSize,
		offX:   (float64(width) - side) / 2,
		offY:   (float64(height) - side) / 2,
	}
}

// Project converts a scene point to pixel coordinates (y down).
func (c Canvas) Project(p Point) (float64, float64) {
	return c.offX + p.X*c.scale, c.offY + (SceneSize-p.Y)*c.scale
}

// Length converts a scene distance to pixels.
func (c Canvas) Length(v float64) float64 { return v * c.scale }

// PointWidth converts a stroke width in points to pixels. At the default size
// one scene unit is 50px and one point is 100/72px.
func (c Canvas) PointWidth(pt float64) float64 { return pt * c.scale / 36 }

// Rasterize paints the scene onto a transparent RGBA image.
func Rasterize(scene Scene, canvas Canvas) image.Image {
	dc := gg.NewContext(canvas.Width, canvas.Height)
	dc.SetLineCapSquare()
	for _, sh := range scene.Shapes {
		paintShape(dc, canvas, sh)
	}
	return dc.Image()
}

// EncodePNG rasterises the scene and writes it as PNG.
func EncodePNG(w io.Writer, scene Scene, canvas Canvas) error {
	return png.Encode(w, Rasterize(scene, canvas))
}

func paintShape(dc *gg.Context, canvas Canvas, sh Shape) {
	switch sh.Kind {
	case KindLine:
		x1, y1 := canvas.Project(sh.From)
		x2, y2 := canvas.Project(sh.To)
		dc.DrawLine(x1, y1, x2, y2)
	case KindCircle:
		x, y := canvas.Project(sh.Center)
		dc.DrawCircle(x, y, canvas.Length(sh.RX))
	case KindEllipse:
		x, y := canvas.Project(sh.Center)
		dc.Push()
		defer dc.Pop()
		// y is flipped, so a counter-clockwise scene rotation is clockwise on screen.
		dc.RotateAbout(gg.Radians(-sh.Rotation), x, y)
		dc.DrawEllipse(x, y, canvas.Length(sh.RX), canvas.Length(sh.RY))
	case KindPolygon:
		for i, p := range sh.Points {
			x, y := canvas.Project(p)
			if i == 0 {
				dc.MoveTo(x, y)
				continue
			}
			dc.LineTo(x, y)
		}
		dc.ClosePath()
	default:
		return
	}

	if sh.Kind != KindLine && sh.Fill.A > 0 {
		dc.SetColor(withAlpha(sh.Fill, sh.Alpha))
		dc.FillPreserve()
	}
	if sh.Stroke.A > 0 && sh.StrokeWidth > 0 {
		dc.SetColor(withAlpha(sh.Stroke, sh.Alpha))
		dc.SetLineWidth(canvas.PointWidth(sh.StrokeWidth))
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}
