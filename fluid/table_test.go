package fluid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPropertyTable_IndexesByFluid(t *testing.T) {
	rows := append(waterRows(),
		row("nitrogen", SourceThermopack, 100, 1e5, Density, 3.5, "colour", 1.0),
		row("nitrogen", SourcePyKingas, 200, 5e5, Density, math.NaN()),
	)
	tbl := mustTable(t, rows)

	assert.Equal(t, []string{"nitrogen", "water"}, tbl.Fluids())
	assert.Equal(t, 6, tbl.Len())
	assert.Len(t, tbl.Rows("water"), 4)
	assert.Equal(t, []string{SourceCoolProp, SourceThermopack, SourcePyKingas}, tbl.Sources())

	n := tbl.Rows("nitrogen")
	assert.Equal(t, map[string]float64{Density: 3.5}, n[0].Values, "non-canonical keys are dropped")
	assert.Empty(t, n[1].Values, "NaN values are absent")

	b, ok := tbl.Bounds("nitrogen")
	require.True(t, ok)
	assert.Equal(t, Bounds{TMin: 100, TMax: 100, PMin: 1e5, PMax: 1e5}, b, "rows left without values do not widen the envelope")
	_, ok = tbl.Bounds("argon")
	assert.False(t, ok)
}

func TestNewPropertyTable_RejectsNonFiniteCoordinates(t *testing.T) {
	for _, r := range []Row{
		row("water", SourceCoolProp, math.NaN(), 1e5, Density, 1.0),
		row("water", SourceCoolProp, 300, math.Inf(1), Density, 1.0),
	} {
		_, err := NewPropertyTable([]Row{r}, MustPropertySet(DefaultProperties))
		assert.True(t, errors.Is(err, ErrMalformedTable), "got %v", err)
	}
}

func TestNewPropertyTable_DropsInfiniteValues(t *testing.T) {
	// GIVEN infinite samples next to finite ones
	rows := waterRows()
	rows[0].Values[Density] = math.Inf(1)
	rows[1].Values[Viscosity] = math.Inf(-1)
	tbl := mustTable(t, rows)

	// THEN only finite values survive
	assert.Empty(t, tbl.Rows("water")[0].Values)
	assert.Equal(t, map[string]float64{Density: 993}, tbl.Rows("water")[1].Values)

	// AND the sample point reports n/a like the cells that depend on it
	e := mustEngine(t, rows)
	for _, pt := range [][2]float64{{300, 1e5}, {305, 1.5e5}} {
		got, err := e.Query("water", pt[0], pt[1], []string{Density})
		require.NoError(t, err)
		assert.False(t, got[Density].Available(), "point %v", pt)
	}
	got, err := e.Query("water", 305, 2e5, []string{Density})
	require.NoError(t, err)
	assert.Equal(t, "996", got[Density].String())
}

func TestNewPropertyTable_BoundsFallBackWhenNoValues(t *testing.T) {
	tbl := mustTable(t, []Row{
		row("argon", SourceCoolProp, 90, 1e5, "colour", 1.0),
		row("argon", SourceCoolProp, 120, 3e5),
	})
	b, ok := tbl.Bounds("argon")
	require.True(t, ok)
	assert.Equal(t, Bounds{TMin: 90, TMax: 120, PMin: 1e5, PMax: 3e5}, b)
}

func TestNewPropertyTable_BoundsIgnoreRowsWithoutCanonicalValues(t *testing.T) {
	// GIVEN a row at T=400 carrying only a non-canonical column
	rows := append(waterRows(), row("water", "lab", 400, 5e5, "colour", 1.0))
	tbl := mustTable(t, rows)

	// THEN the envelope stays on the sampled properties
	b, ok := tbl.Bounds("water")
	require.True(t, ok)
	assert.Equal(t, Bounds{TMin: 300, TMax: 310, PMin: 1e5, PMax: 2e5}, b)

	_, err := mustEngine(t, rows).Query("water", 400, 5e5, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestBounds_ContainsIsClosed(t *testing.T) {
	b := Bounds{TMin: 300, TMax: 310, PMin: 1e5, PMax: 2e5}
	assert.True(t, b.Contains(300, 1e5))
	assert.True(t, b.Contains(310, 2e5))
	assert.False(t, b.Contains(310.0001, 2e5))
	assert.False(t, b.Contains(math.NaN(), 1e5))
}

func TestNewPropertySet_Validation(t *testing.T) {
	s, err := NewPropertySet([]string{Viscosity, Density})
	require.NoError(t, err)
	assert.Equal(t, []string{Density, Viscosity}, s.Keys())
	assert.True(t, s.Contains(Density))
	assert.False(t, s.Contains("Density"))

	for _, keys := range [][]string{nil, {""}, {"Density"}, {" density"}, {"t"}, {Density, Density}} {
		_, err := NewPropertySet(keys)
		assert.Error(t, err, "keys %q", keys)
	}
	assert.Equal(t, 20, MustPropertySet(DefaultProperties).Len())
}
