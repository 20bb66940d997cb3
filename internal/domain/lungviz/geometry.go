package lungviz

// Point is a position in scene units: a 10x10 canvas with y pointing up.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Side selects a lung.
type Side int

const (
	Left Side = iota
	Right
)

const (
	// SceneSize is the visible extent of the scene on both axes.
	SceneSize = 10.0

	lungScale     = 2.5
	curveSegments = 8
	midline       = 5.0
)

var lungCenters = [2]Point{
	Left:  {X: 3.5, Y: 4},
	Right: {X: 6.5, Y: 4},
}

// Anatomical anchors relative to each lung centre, before scaling. The left
// lung has a rounder apex and a concave medial border; the right one is
// shorter and wider.
var lungAnchors = [2][]Point{
	Left: {
		{-0.3, 2.2}, {-1.2, 1.8}, {-1.7, 1.0}, {-1.9, 0.0},
		{-1.8, -1.0}, {-1.5, -1.8}, {-0.8, -2.3}, {0.0, -2.4},
		{0.4, -1.8}, {0.3, -0.5}, {0.2, 0.5}, {0.0, 1.5},
	},
	Right: {
		{0.3, 2.0}, {1.2, 1.8}, {1.8, 1.0}, {2.0, 0.0},
		{1.9, -1.0}, {1.6, -1.8}, {0.9, -2.3}, {0.0, -2.2},
		{-0.4, -1.8}, {-0.3, -0.5}, {-0.2, 0.5}, {0.0, 1.5},
	},
}

// Silhouette is the closed outline of one lung, flattened to a polygon. The
// same polygon is filled and used for containment, so anything kept by
// Contains is drawn inside the organ.
type Silhouette struct {
	Side    Side
	Outline []Point

	min, max Point
}

// LungSilhouette builds the outline for one lung.
func LungSilhouette(side Side) Silhouette {
	center := lungCenters[side]
	anchors := lungAnchors[side]
	scaled := make([]Point, len(anchors))
	for i, a := range anchors {
		scaled[i] = Point{X: center.X + a.X*lungScale, Y: center.Y + a.Y*lungScale}
	}
	outline := smoothClosed(scaled, curveSegments)

	s := Silhouette{Side: side, Outline: outline, min: outline[0], max: outline[0]}
	for _, p := range outline[1:] {
		s.min.X = min(s.min.X, p.X)
		s.min.Y = min(s.min.Y, p.Y)
		s.max.X = max(s.max.X, p.X)
		s.max.Y = max(s.max.Y, p.Y)
	}
	return s
}

// Contains reports whether p lies inside the outline (even-odd rule).
func (s Silhouette) Contains(p Point) bool {
	if p.X < s.min.X || p.X > s.max.X || p.Y < s.min.Y || p.Y > s.max.Y {
		return false
	}
	inside := false
	n := len(s.Outline)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := s.Outline[i], s.Outline[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			cross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < cross {
				inside = !inside
			}
		}
	}
	return inside
}

// smoothClosed turns a closed anchor polygon into a smooth curve: each anchor
// becomes the control point of a quadratic segment between the midpoints of
// its two neighbouring edges.
func smoothClosed(anchors []Point, segments int) []Point {
	n := len(anchors)
	out := make([]Point, 0, n*segments)
	for i := 0; i < n; i++ {
		prev := anchors[(i-1+n)%n]
		cur := anchors[i]
		next := anchors[(i+1)%n]
		start := midpoint(prev, cur)
		end := midpoint(cur, next)
		for k := 0; k < segments; k++ {
			out = append(out, quadratic(start, cur, end, float64(k)/float64(segments)))
		}
	}
	return out
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func quadratic(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}
