package lungviz

import (
	"bytes"
	"errors"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanvasProjection(t *testing.T) {
	c := NewCanvas(800, 500)
	x, y := c.Project(Point{0, 10})
	require.InDelta(t, 150, x, 1e-9)
	require.InDelta(t, 0, y, 1e-9)

	x, y = c.Project(Point{10, 0})
	require.InDelta(t, 650, x, 1e-9)
	require.InDelta(t, 500, y, 1e-9)

	require.InDelta(t, 50, c.PointWidth(36), 1e-9)
}

func TestNewCanvasDefaults(t *testing.T) {
	c := NewCanvas(0, -1)
	require.Equal(t, DefaultWidth, c.Width)
	require.Equal(t, DefaultHeight, c.Height)
}

func TestNewCanvasCapsSize(t *testing.T) {
	c := NewCanvas(100000, 30000)
	require.Equal(t, MaxCanvasSide, c.Width)
	require.Equal(t, MaxCanvasSide, c.Height)
}

func TestEncodePNGMatchesRasterize(t *testing.T) {
	canvas := NewCanvas(64, 48)
	scene := BuildScene(47)
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, scene, canvas))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	want := Rasterize(scene, canvas)
	require.Equal(t, want.Bounds(), img.Bounds())
	x, y := canvas.Project(Point{3.5, 4})
	_, _, _, a := img.At(int(x), int(y)).RGBA()
	require.NotZero(t, a)
	_, _, _, a = img.At(0, 0).RGBA()
	require.Zero(t, a)
}

func TestRasterizeFillsLungsOnTransparentBackground(t *testing.T) {
	canvas := NewCanvas(500, 500)
	img := Rasterize(BuildScene(100), canvas)
	require.Equal(t, 500, img.Bounds().Dx())

	x, y := canvas.Project(Point{3.5, 4})
	_, _, _, a := img.At(int(x), int(y)).RGBA()
	require.NotZero(t, a)

	_, _, _, a = img.At(2, 2).RGBA()
	require.Zero(t, a)
}

func TestEncodePNGIsReproducible(t *testing.T) {
	canvas := NewCanvas(200, 200)
	var first, second bytes.Buffer
	require.NoError(t, EncodePNG(&first, BuildScene(33.3), canvas))
	require.NoError(t, EncodePNG(&second, BuildScene(33.3), canvas))
	require.Equal(t, first.Bytes(), second.Bytes())

	img, err := png.Decode(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestEncodeSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSVG(&buf, BuildScene(12), NewCanvas(300, 300)))
	out := buf.String()
	require.Contains(t, out, "<svg")
	require.Contains(t, out, "<polygon")
	require.Contains(t, out, "rotate(")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeSVGReportsWriteErrors(t *testing.T) {
	err := EncodeSVG(failingWriter{}, BuildScene(50), NewCanvas(100, 100))
	require.EqualError(t, err, "disk full")
}

func TestEncodeSVGKeepsSmallDotsOnTinyCanvas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSVG(&buf, BuildScene(5), NewCanvas(20, 20)))
	out := buf.String()

	require.Contains(t, out, `viewBox="0 0 200 200"`)
	require.Contains(t, out, "<circle")
	require.NotRegexp(t, regexp.MustCompile(` r="0"| rx="0"| ry="0"`), out)
}
