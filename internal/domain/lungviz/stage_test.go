package lungviz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageFor(t *testing.T) {
	cases := map[float64]Stage{
		100:   StageEarly,
		99.9:  StageEarly,
		80:    StageEarly,
		79.99: StageMild,
		60:    StageMild,
		59.5:  StageModerate,
		40:    StageModerate,
		20:    StageSevere,
		19.99: StageCritical,
		0:     StageCritical,
		-5:    StageCritical,
		150:   StageEarly,
	}
	for health, want := range cases {
		require.Equal(t, want, StageFor(health), "health %v", health)
	}
	require.Equal(t, StageCritical, StageFor(math.NaN()))
}

func TestStageNeverDecreasesWithDamage(t *testing.T) {
	prev := StageFor(100)
	for h := 100.0; h >= 0; h -= 0.25 {
		s := StageFor(h)
		require.GreaterOrEqual(t, s, prev, "health %v", h)
		prev = s
	}
}

func TestSeedFor(t *testing.T) {
	require.Equal(t, int64(42), SeedFor(42.9))
	require.Equal(t, int64(42), SeedFor(42.0))
	require.Equal(t, int64(0), SeedFor(-3))
	require.Equal(t, int64(100), SeedFor(250))
}

func TestStageString(t *testing.T) {
	require.Equal(t, "critical", StageCritical.String())
	require.Equal(t, "unknown", Stage(9).String())
}

func TestPaletteFor(t *testing.T) {
	require.Equal(t, "#E5ACAC", HexString(PaletteFor(100).Fill))
	require.Equal(t, "#E5ACAC", HexString(PaletteFor(99).Fill))
	require.Equal(t, "#D9A09F", HexString(PaletteFor(98.9).Fill))
	require.Equal(t, "#79514E", HexString(PaletteFor(60).Fill))
	require.Equal(t, "#1C1110", HexString(PaletteFor(10).Fill))
	require.Equal(t, "#110A0A", HexString(PaletteFor(9.99).Fill))
	require.InDelta(t, 1.0, PaletteFor(0).TarOpacity, 1e-9)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#a08080")
	require.NoError(t, err)
	require.Equal(t, uint8(0xA0), c.R)
	require.Equal(t, uint8(0x80), c.G)
	require.Equal(t, uint8(0xff), c.A)

	_, err = ParseHex("#abc")
	require.Error(t, err)
	_, err = ParseHex("zzzzzz")
	require.Error(t, err)
}
