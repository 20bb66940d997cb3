package lungviz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var baseLayers = map[Layer]bool{
	LayerLung:    true,
	LayerBronchi: true,
	LayerShading: true,
	LayerAlveoli: true,
}

func TestBuildSceneIsDeterministic(t *testing.T) {
	for _, h := range []float64{100, 87.5, 42.3, 3} {
		require.Equal(t, BuildScene(h), BuildScene(h), "health %v", h)
	}
}

func TestBuildSceneSeedsFromIntegerPart(t *testing.T) {
	a := BuildScene(42.1)
	b := BuildScene(42.9)
	require.Equal(t, a.Seed, b.Seed)
	require.Equal(t, int64(42), a.Seed)
}

func TestBuildSceneHealthyHasNoOverlays(t *testing.T) {
	scene := BuildScene(100)
	require.Equal(t, StageEarly, scene.Stage)
	require.Equal(t, 2, scene.Count(LayerLung))
	require.Equal(t, len(bronchialTree), scene.Count(LayerBronchi))
	require.Equal(t, 2, scene.Count(LayerShading))
	for _, layer := range scene.Layers() {
		require.True(t, baseLayers[layer], "unexpected layer %s", layer)
	}
	require.Zero(t, scene.DarkElements())
}

func TestBuildSceneOverlaysAreCumulative(t *testing.T) {
	early := BuildScene(95)
	require.Equal(t, 4, early.Count(LayerMucus))
	require.Zero(t, early.Count(LayerMacrophage))
	require.Zero(t, early.Count(LayerFibrosis))

	mild := BuildScene(70)
	require.Equal(t, StageMild, mild.Stage)
	require.Equal(t, 4, mild.Count(LayerMucus))
	require.Positive(t, mild.Count(LayerMacrophage))
	require.Zero(t, mild.Count(LayerFibrosis))

	moderate := BuildScene(50)
	require.Equal(t, 4, moderate.Count(LayerMucus))
	require.Positive(t, moderate.Count(LayerMacrophage))
	require.Equal(t, len(fibrosisAreas), moderate.Count(LayerFibrosis))
	require.Zero(t, moderate.Count(LayerTarUpper))

	severe := BuildScene(30)
	require.Equal(t, len(fibrosisAreas), severe.Count(LayerFibrosis))
	require.Positive(t, severe.Count(LayerTarUpper))
	require.Zero(t, severe.Count(LayerTarSpots))

	critical := BuildScene(10)
	require.Equal(t, StageCritical, critical.Stage)
	require.Equal(t, 4, critical.Count(LayerMucus))
	require.Equal(t, len(fibrosisAreas), critical.Count(LayerFibrosis))
	require.Positive(t, critical.Count(LayerTarSpots))
	require.Positive(t, critical.Count(LayerBlackAreas))
}

func TestBuildSceneHoneycombCoresPairWithCells(t *testing.T) {
	scene := BuildScene(5)
	require.Equal(t, scene.Count(LayerHoneycomb), scene.Count(LayerHoneycombCore))
}

func TestBuildSceneKeepsRandomElementsInsideLungs(t *testing.T) {
	scene := BuildScene(15)
	left, right := LungSilhouette(Left), LungSilhouette(Right)
	fixed := map[Layer]bool{
		LayerLung: true, LayerBronchi: true, LayerShading: true,
		LayerMucus: true, LayerFibrosis: true,
	}
	for _, sh := range scene.Shapes {
		if fixed[sh.Layer] {
			continue
		}
		require.True(t, left.Contains(sh.Center) || right.Contains(sh.Center),
			"%s at %+v lies outside both lungs", sh.Layer, sh.Center)
	}
}

func TestBuildSceneDarkElementsGrowWithDamage(t *testing.T) {
	bands := [][2]int{{81, 99}, {61, 79}, {41, 59}, {21, 39}, {1, 19}}
	prev := -1.0
	for _, band := range bands {
		total := 0
		for h := band[0]; h <= band[1]; h++ {
			total += BuildScene(float64(h)).DarkElements()
		}
		avg := float64(total) / float64(band[1]-band[0]+1)
		require.Greater(t, avg, prev, "band %v", band)
		prev = avg
	}
}

func TestBuildScenePaintsLinesAbovePatches(t *testing.T) {
	scene := BuildScene(35)
	seenLine := false
	for _, sh := range scene.Shapes {
		if sh.Kind == KindLine {
			seenLine = true
			continue
		}
		require.False(t, seenLine, "patch %s painted after a line", sh.Layer)
	}
}

func TestBuildSceneUsesBandPalette(t *testing.T) {
	scene := BuildScene(55)
	for _, sh := range scene.Shapes {
		if sh.Layer == LayerLung {
			require.Equal(t, PaletteFor(55).Fill, sh.Fill)
		}
	}
}
