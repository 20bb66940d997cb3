package lungviz

import (
	"image/color"
	"sort"
)

// ShapeKind identifies the primitive a Shape draws.
type ShapeKind string

const (
	KindCircle  ShapeKind = "circle"
	KindEllipse ShapeKind = "ellipse"
	KindLine    ShapeKind = "line"
	KindPolygon ShapeKind = "polygon"
)

// Layer tags every shape with the anatomical feature it depicts.
type Layer string

const (
	LayerLung          Layer = "lung"
	LayerBronchi       Layer = "bronchi"
	LayerShading       Layer = "shading"
	LayerAlveoli       Layer = "alveoli"
	LayerMucus         Layer = "mucus"
	LayerInflammation  Layer = "inflammation"
	LayerMacrophage    Layer = "macrophage"
	LayerBronchiolitis Layer = "bronchiolitis"
	LayerEmphysema     Layer = "emphysema"
	LayerFibrosis      Layer = "fibrosis"
	LayerTarUpper      Layer = "tar_upper"
	LayerTarLower      Layer = "tar_lower"
	LayerBullae        Layer = "bullae"
	LayerTarSpots      Layer = "tar_spots"
	LayerBlackAreas    Layer = "black_areas"
	LayerHoneycomb     Layer = "honeycomb"
	LayerHoneycombCore Layer = "honeycomb_core"
	LayerUpperBullae   Layer = "upper_bullae"
	LayerBullaTar      Layer = "bulla_tar"
)

var darkLayers = map[Layer]struct{}{
	LayerMacrophage:    {},
	LayerTarUpper:      {},
	LayerTarLower:      {},
	LayerTarSpots:      {},
	LayerBlackAreas:    {},
	LayerHoneycombCore: {},
	LayerBullaTar:      {},
}

// IsDark reports whether the layer depicts pigment or tar.
func (l Layer) IsDark() bool {
	_, ok := darkLayers[l]
	return ok
}

// Shape is one drawable primitive in scene units. Circles use RX as the
// radius; ellipses use RX/RY as semi-axes rotated by Rotation degrees
// counter-clockwise. A zero-alpha Fill or Stroke is not painted. StrokeWidth
// is in typographic points.
type Shape struct {
	Kind        ShapeKind
	Layer       Layer
	Center      Point
	RX, RY      float64
	Rotation    float64
	From, To    Point
	Points      []Point
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Alpha       float64

	z int
}

// Scene is the full drawing list for one health value, in paint order.
type Scene struct {
	Health  float64
	Seed    int64
	Stage   Stage
	Palette Palette
	Shapes  []Shape
}

// Count returns the number of shapes in a layer.
func (s Scene) Count(layer Layer) int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Layer == layer {
			n++
		}
	}
	return n
}

// DarkElements counts pigment and tar shapes.
func (s Scene) DarkElements() int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Layer.IsDark() {
			n++
		}
	}
	return n
}

// Layers lists the distinct layers present, in first-paint order.
func (s Scene) Layers() []Layer {
	seen := make(map[Layer]struct{})
	var out []Layer
	for _, sh := range s.Shapes {
		if _, ok := seen[sh.Layer]; ok {
			continue
		}
		seen[sh.Layer] = struct{}{}
		out = append(out, sh.Layer)
	}
	return out
}

// Line strokes sit above filled patches regardless of insertion order.
const (
	zPatch = 1
	zLine  = 2
)

func sortByDepth(shapes []Shape) {
	sort.SliceStable(shapes, func(i, j int) bool { return shapes[i].z < shapes[j].z })
}
