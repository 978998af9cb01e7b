package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_NilPatchIsDeepCopy(t *testing.T) {
	base := Default()
	out := Merge[Config, Patch](base, nil)

	require.Empty(t, cmp.Diff(base, out))

	// The copy must not alias the base slice.
	out.Connection.Dash[0] = 99
	assert.NotEqual(t, 99.0, base.Connection.Dash[0])
}

func TestMerge_DoesNotMutateBase(t *testing.T) {
	base := Default()
	snapshot := Default()

	patch := &Patch{
		Text:         &TextPatch{Title: Ptr("OTHER")},
		TrafficLight: &TrafficLightPatch{Active: Ptr(LensRed)},
		Connection:   &ConnectionPatch{Dash: []float64{3}},
		Figures:      &FiguresPatch{Left: &FigurePatch{Reach: Ptr(0.1)}},
	}
	_ = Merge(base, patch)

	assert.Empty(t, cmp.Diff(snapshot, base))
}

func TestMerge_Idempotent(t *testing.T) {
	patch := &Patch{
		Palette: &PalettePatch{Green: Ptr("#00ff00")},
		Figures: &FiguresPatch{Right: &FigurePatch{X: Ptr(70.0), Stance: Ptr(1.0)}},
		Ground:  &GroundPatch{Horizon: Ptr(75.0)},
	}
	once := Merge(Default(), patch)
	twice := Merge(once, patch)

	assert.Empty(t, cmp.Diff(once, twice))
}

func TestMerge_PreservesUntouchedLeaves(t *testing.T) {
	def := Default()
	out := Merge(def, &Patch{Figures: &FiguresPatch{Left: &FigurePatch{Reach: Ptr(0.2)}}})

	assert.Equal(t, 0.2, out.Figures.Left.Reach)

	// Everything else equals the default, including siblings at the same depth.
	out.Figures.Left.Reach = def.Figures.Left.Reach
	assert.Empty(t, cmp.Diff(def, out))
}

func TestMerge_ArraysAreReplaced(t *testing.T) {
	patchDash := []float64{4}
	out := Merge(Default(), &Patch{Connection: &ConnectionPatch{Dash: patchDash}})

	assert.Equal(t, []float64{4}, out.Connection.Dash)

	patchDash[0] = 7
	assert.Equal(t, 4.0, out.Connection.Dash[0], "patch slice must be copied, not aliased")
}

func TestMerge_EmptyRecordPatchKeepsBase(t *testing.T) {
	out := Merge(Default(), &Patch{TrafficLight: &TrafficLightPatch{}})
	assert.Empty(t, cmp.Diff(Default(), out))
}

func TestMerge_ExplicitZeroValuesApply(t *testing.T) {
	out := Merge(Default(), &Patch{
		Connection: &ConnectionPatch{Enabled: Ptr(false)},
		Text:       &TextPatch{Subtitle: Ptr("")},
	})
	assert.False(t, out.Connection.Enabled)
	assert.Equal(t, "", out.Text.Subtitle)
}

func TestMerge_MapRecords(t *testing.T) {
	type doc struct {
		Tags map[string]any
	}
	type docPatch struct {
		Tags map[string]any
	}

	base := doc{Tags: map[string]any{
		"a": map[string]any{"x": 1, "y": 2},
		"b": []int{1, 2},
	}}
	out := Merge(base, &docPatch{Tags: map[string]any{
		"a": map[string]any{"y": 3},
		"b": []int{9},
		"c": "new",
	}})

	assert.Equal(t, map[string]any{
		"a": map[string]any{"x": 1, "y": 3},
		"b": []int{9},
		"c": "new",
	}, out.Tags)
	assert.Equal(t, 2, base.Tags["a"].(map[string]any)["y"], "base map must be untouched")
}

func TestMerge_SchemaMismatchPanics(t *testing.T) {
	type target struct{ A int }
	type wrongName struct{ B *int }
	type wrongType struct{ A *string }

	assert.Panics(t, func() { Merge(target{}, &wrongName{B: Ptr(1)}) })
	assert.Panics(t, func() { Merge(target{}, &wrongType{A: Ptr("x")}) })
}

func TestMerge_ConvertsNamedStringTypes(t *testing.T) {
	type target struct{ Active Lens }
	type patch struct{ Active *string }

	out := Merge(target{Active: LensGreen}, &patch{Active: Ptr("amber")})
	assert.Equal(t, LensAmber, out.Active)
}

func TestClone_Independent(t *testing.T) {
	src := Default()
	c := Clone(src)
	c.Connection.Dash = append(c.Connection.Dash[:0], 5)
	c.Figures.Left.X = 1

	assert.Equal(t, Default().Connection.Dash, src.Connection.Dash)
	assert.Equal(t, 18.0, src.Figures.Left.X)
}
