package lungviz

import (
	"image/color"
	"math"
	"math/rand"
)

// BuildScene lays out the illustration for a health percentage. The result
// depends only on health: placement randomness comes from a PRNG seeded with
// floor(health) that is private to this call.
func BuildScene(health float64) Scene {
	health = clampHealth(health)
	seed := SeedFor(health)
	b := &builder{
		health: health,
		damage: 100 - health,
		rng:    rand.New(rand.NewSource(seed)),
		lungs:  [2]Silhouette{LungSilhouette(Left), LungSilhouette(Right)},
	}
	palette := PaletteFor(health)

	b.bronchi()
	b.lungOutlines(palette)
	b.shading()
	b.alveoli()
	if health < 100 {
		stage := StageFor(health)
		for _, o := range overlays {
			if stage >= o.minStage {
				o.draw(b)
			}
		}
	}

	sortByDepth(b.shapes)
	return Scene{
		Health:  health,
		Seed:    seed,
		Stage:   StageFor(health),
		Palette: palette,
		Shapes:  b.shapes,
	}
}

type overlay struct {
	minStage Stage
	draw     func(*builder)
}

// Cumulative: every stage keeps the layers of the stages below it.
var overlays = []overlay{
	{StageEarly, (*builder).mucus},
	{StageEarly, (*builder).inflammation},
	{StageMild, (*builder).macrophages},
	{StageMild, (*builder).bronchiolitis},
	{StageModerate, (*builder).emphysema},
	{StageModerate, (*builder).fibrosis},
	{StageSevere, (*builder).tarDeposits},
	{StageSevere, (*builder).bullae},
	{StageCritical, (*builder).tarSpots},
	{StageCritical, (*builder).blackAreas},
	{StageCritical, (*builder).honeycomb},
	{StageCritical, (*builder).upperBullae},
}

type builder struct {
	health float64
	damage float64
	rng    *rand.Rand
	lungs  [2]Silhouette
	shapes []Shape
}

func (b *builder) rand() float64 { return b.rng.Float64() }

// jitter returns a value uniformly spread over [-span/2, span/2).
func (b *builder) jitter(span float64) float64 { return (b.rand() - 0.5) * span }

func (b *builder) inside(side Side, p Point) bool { return b.lungs[side].Contains(p) }

// insideByX picks the lung from the point's side of the midline.
func (b *builder) insideByX(p Point) bool {
	if p.X < midline {
		return b.inside(Left, p)
	}
	return b.inside(Right, p)
}

func sideOf(i int) Side {
	if i%2 == 0 {
		return Left
	}
	return Right
}

func centerX(side Side) float64 { return lungCenters[side].X }

func (b *builder) circle(layer Layer, c Point, r float64, fill, stroke color.NRGBA, width, alpha float64) {
	b.shapes = append(b.shapes, Shape{
		Kind: KindCircle, Layer: layer, Center: c, RX: r, RY: r,
		Fill: fill, Stroke: stroke, StrokeWidth: width, Alpha: alpha, z: zPatch,
	})
}

// ellipse takes full width and height, matching how the layers are specified.
func (b *builder) ellipse(layer Layer, c Point, w, h, rotation float64, fill, stroke color.NRGBA, width, alpha float64) {
	b.shapes = append(b.shapes, Shape{
		Kind: KindEllipse, Layer: layer, Center: c, RX: w / 2, RY: h / 2, Rotation: rotation,
		Fill: fill, Stroke: stroke, StrokeWidth: width, Alpha: alpha, z: zPatch,
	})
}

func (b *builder) line(layer Layer, x1, x2, y1, y2 float64, c color.NRGBA, width, alpha float64) {
	b.shapes = append(b.shapes, Shape{
		Kind: KindLine, Layer: layer, From: Point{x1, y1}, To: Point{x2, y2},
		Stroke: c, StrokeWidth: width, Alpha: alpha, z: zLine,
	})
}

var none = color.NRGBA{}

type segment struct {
	xs, ys [2]float64
	width  float64
}

var bronchialTree = []segment{
	// trachea
	{[2]float64{5, 5}, [2]float64{9.8, 8.5}, 6},
	{[2]float64{5, 5.1}, [2]float64{8.5, 7.8}, 6},
	// carina
	{[2]float64{5.1, 4.3}, [2]float64{7.8, 7.2}, 5},
	{[2]float64{5.1, 5.9}, [2]float64{7.8, 7.2}, 5},
	// main bronchi
	{[2]float64{4.3, 3.6}, [2]float64{7.2, 6.9}, 4},
	{[2]float64{5.9, 6.4}, [2]float64{7.2, 6.7}, 4},
	// lobar bronchi
	{[2]float64{3.6, 3.2}, [2]float64{6.9, 7.2}, 3},
	{[2]float64{3.6, 3.0}, [2]float64{6.9, 6.2}, 3},
	{[2]float64{6.4, 6.8}, [2]float64{6.7, 7.2}, 3},
	{[2]float64{6.4, 6.9}, [2]float64{6.7, 6.3}, 3},
	{[2]float64{6.4, 6.7}, [2]float64{6.7, 5.9}, 3},
	// segmental bronchi
	{[2]float64{3.2, 2.8}, [2]float64{7.2, 7.5}, 2},
	{[2]float64{3.2, 2.9}, [2]float64{7.2, 6.9}, 2},
	{[2]float64{3.0, 2.6}, [2]float64{6.2, 6.4}, 2},
	{[2]float64{3.0, 2.7}, [2]float64{6.2, 5.8}, 2},
	{[2]float64{3.0, 3.3}, [2]float64{6.2, 5.8}, 2},
	{[2]float64{6.8, 7.2}, [2]float64{7.2, 7.4}, 2},
	{[2]float64{6.8, 7.0}, [2]float64{7.2, 6.9}, 2},
	{[2]float64{6.9, 7.3}, [2]float64{6.3, 6.5}, 2},
	{[2]float64{6.7, 7.1}, [2]float64{5.9, 5.6}, 2},
	{[2]float64{6.7, 6.9}, [2]float64{5.9, 5.4}, 2},
}

func (b *builder) bronchi() {
	for _, s := range bronchialTree {
		b.line(LayerBronchi, s.xs[0], s.xs[1], s.ys[0], s.ys[1], colorBronchi, s.width, 1)
	}
}

func (b *builder) lungOutlines(p Palette) {
	for _, lung := range b.lungs {
		b.shapes = append(b.shapes, Shape{
			Kind: KindPolygon, Layer: LayerLung, Points: lung.Outline,
			Fill: p.Fill, Stroke: colorOutline, StrokeWidth: 1, Alpha: 1, z: zPatch,
		})
	}
}

func (b *builder) shading() {
	b.line(LayerShading, 2, 3.5, 4, 5.5, colorBlack, 5, 0.1)
	b.line(LayerShading, 8, 6.5, 4, 5.5, colorBlack, 5, 0.1)
}

func (b *builder) alveoli() {
	n := int(12 * b.health / 100)
	for i := 0; i < n; i++ {
		for _, side := range []Side{Left, Right} {
			p := Point{X: centerX(side) + b.jitter(1.8), Y: 4 + b.jitter(3)}
			if b.inside(side, p) {
				b.circle(LayerAlveoli, p, 0.1, colorAlveolus, colorAlveolusEdge, 0.5, 0.6)
			}
		}
	}
}

var mucusAnchors = []Point{{4.2, 6.2}, {5.8, 6.2}, {3.8, 5.5}, {6.2, 5.5}}

func (b *builder) mucus() {
	for _, p := range mucusAnchors {
		b.ellipse(LayerMucus, p, 0.15, 0.08, 0, colorMucus, colorMucusEdge, 0.5, 0.7)
	}
}

func (b *builder) inflammation() {
	for i := 0; i < 8; i++ {
		side := sideOf(i)
		p := Point{X: centerX(side) + b.jitter(1.2), Y: 5.5 + b.jitter(0.8)}
		if b.inside(side, p) {
			b.circle(LayerInflammation, p, 0.08, colorInflamed, none, 0, 0.6)
		}
	}
}

// polar places a point around a lung centre with an elliptical spread.
func (b *builder) polar(side Side, dist, sx, sy float64) Point {
	angle := b.rand() * 2 * math.Pi
	return Point{
		X: centerX(side) + dist*math.Cos(angle)*sx,
		Y: 4 + dist*math.Sin(angle)*sy,
	}
}

func (b *builder) macrophages() {
	count := int(40 + b.damage*0.8)
	fill := macrophageColors[min(3, int(b.damage/20))]
	alpha := 0.75 + b.damage/100*0.2
	for i := 0; i < count; i++ {
		side := sideOf(i)
		p := b.polar(side, 0.5+b.rand(), 1.7, 2.3)
		if b.inside(side, p) {
			size := 0.2 + b.rand()*0.2 + b.damage/100*0.15
			b.circle(LayerMacrophage, p, size, fill, none, 0, alpha)
		}
	}
}

func (b *builder) bronchiolitis() {
	count := int(20 + b.damage*0.6)
	colors := bronchiolitisPalette(b.health)
	alpha := 0.6 + b.damage/100*0.35
	for i := 0; i < count; i++ {
		side := sideOf(i)
		p := b.polar(side, 0.3+b.rand()*1.2, 1.6, 2.2)
		if b.inside(side, p) {
			size := 0.18 + b.rand()*0.12 + b.damage/100*0.1
			b.circle(LayerBronchiolitis, p, size, colors.fill, colors.edge, 0.7, alpha)
		}
	}
}

// Vertical offsets of the five emphysema bands, apex to base.
var emphysemaBands = [5]float64{1.5, 0.8, 0, -0.8, -1.5}

func (b *builder) emphysema() {
	for i := 0; i < 20; i++ {
		side := sideOf(i)
		x := centerX(side) + b.jitter(1.6)
		y := 4 + emphysemaBands[i%5] + b.jitter(0.8)
		p := Point{X: x, Y: y}
		if b.inside(side, p) {
			b.circle(LayerEmphysema, p, 0.15+b.rand()*0.1, colorEmphysema, colorEmphysemaEdge, 0.5, 0.7)
		}
	}
}

type fixedLesion struct {
	at   Point
	size float64
}

var fibrosisAreas = []fixedLesion{
	{Point{3.8, 6.0}, 0.25}, {Point{6.2, 6.0}, 0.25},
	{Point{3.5, 5.0}, 0.3}, {Point{6.5, 5.0}, 0.3},
	{Point{3.2, 4.0}, 0.2}, {Point{6.8, 4.0}, 0.2},
}

func (b *builder) fibrosis() {
	for _, f := range fibrosisAreas {
		b.circle(LayerFibrosis, f.at, f.size, colorFibrosis, colorFibrosisEdge, 0.5, 0.4)
	}
}

func (b *builder) tarDeposits() {
	for i := 0; i < 25; i++ {
		side := sideOf(i)
		p := Point{X: centerX(side) + b.jitter(1.5), Y: 5 + b.rand()*1.5}
		if b.inside(side, p) {
			b.circle(LayerTarUpper, p, 0.15+0.1*b.rand(), colorBlack, none, 0, 0.7)
		}
	}
	for i := 0; i < 15; i++ {
		side := sideOf(i)
		p := Point{X: centerX(side) + b.jitter(1.5), Y: 4 - b.rand()*2}
		if b.inside(side, p) {
			b.circle(LayerTarLower, p, 0.1+0.1*b.rand(), colorBlack, none, 0, 0.5)
		}
	}
}

func (b *builder) bullae() {
	for i := 0; i < 8; i++ {
		side := sideOf(i)
		p := Point{X: centerX(side) + b.jitter(1.4), Y: 4 + (b.rand()-1)*2.5}
		if b.inside(side, p) {
			b.circle(LayerBullae, p, 0.3+b.rand()*0.2, colorBulla, colorBullaEdge, 0.5, 0.8)
		}
	}
}

// areaRadius spreads points evenly over an ellipse's area.
func (b *builder) areaRadius() float64 { return 0.2 + 1.5*math.Sqrt(b.rand()) }

func (b *builder) tarSpots() {
	sizeFactor := 1 + b.damage/40
	for i := 0; i < 160; i++ {
		side := sideOf(i)
		p := b.polar(side, b.areaRadius(), 1.6, 2.2)
		if !b.inside(side, p) {
			continue
		}
		size := (0.3 + 0.5*b.rand()) * sizeFactor
		fill := tarSpotColors[b.rng.Intn(len(tarSpotColors))]
		if b.rand() > 0.3 {
			b.circle(LayerTarSpots, p, size, fill, none, 0, 0.9)
			continue
		}
		w := size * (0.8 + b.rand()*0.4)
		h := size * (0.8 + b.rand()*0.4)
		b.ellipse(LayerTarSpots, p, w, h, b.rand()*360, fill, none, 0, 0.9)
	}
}

func (b *builder) blackAreas() {
	perLung := (25 + int(b.damage/5)) / 2
	type blob struct {
		at   Point
		size float64
	}
	blobs := make([]blob, 0, 2*perLung)
	for _, side := range []Side{Left, Right} {
		for i := 0; i < perLung; i++ {
			p := b.polar(side, b.areaRadius(), 1.6, 2.2)
			size := 0.6 + b.rand()*0.7 + b.damage/100*0.9
			blobs = append(blobs, blob{p, size})
		}
	}
	for _, bl := range blobs {
		if !b.insideByX(bl.at) {
			continue
		}
		if b.rng.Intn(2) == 0 {
			w := bl.size * (0.8 + b.rand()*0.4)
			h := bl.size * (0.8 + b.rand()*0.4)
			b.ellipse(LayerBlackAreas, bl.at, w, h, b.rand()*360, colorBlack, none, 0, 0.95)
			continue
		}
		b.circle(LayerBlackAreas, bl.at, bl.size*1.1, colorBlack, none, 0, 0.95)
	}
}

func (b *builder) honeycomb() {
	for i := 0; i < 25; i++ {
		side := sideOf(i)
		p := Point{X: centerX(side) + b.jitter(1.5), Y: 3 - b.rand()*1.2}
		if b.inside(side, p) {
			b.circle(LayerHoneycomb, p, 0.25, colorHoneycomb, colorHoneycombEdge, 1, 0.9)
			b.circle(LayerHoneycombCore, p, 0.08, colorBlack, none, 0, 0.9)
		}
	}
}

var upperBullae = []fixedLesion{
	{Point{3.0, 5.5}, 0.5}, {Point{7.0, 5.5}, 0.5},
	{Point{3.5, 6.0}, 0.4}, {Point{6.5, 6.0}, 0.4},
	{Point{3.2, 4.5}, 0.45}, {Point{6.8, 4.5}, 0.45},
	{Point{3.8, 5.2}, 0.35}, {Point{6.2, 5.2}, 0.35},
}

func (b *builder) upperBullae() {
	for _, u := range upperBullae {
		if !b.insideByX(u.at) {
			continue
		}
		b.circle(LayerUpperBullae, u.at, u.size, colorUpperBulla, colorUpperBullaRim, 0.7, 0.85)
		side := Left
		if u.at.X >= midline {
			side = Right
		}
		for k := 0; k < 3; k++ {
			spot := Point{X: u.at.X + b.jitter(u.size*1.5), Y: u.at.Y + b.jitter(u.size*1.5)}
			if b.inside(side, spot) {
				b.circle(LayerBullaTar, spot, 0.05+b.rand()*0.08, colorBlack, none, 0, 0.8)
			}
		}
	}
}
