package cssprune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageAccumulator_MergeAcrossFiles(t *testing.T) {
	acc := NewUsageAccumulator()
	acc.Update(ScanContent("a.html", `<div class="btn shared"></div>`))
	acc.Update(ScanContent("b.html", `<span class="stack shared"></span>`))

	merged := acc.Merged()
	assert.Equal(t, 2, acc.Len())
	assert.Equal(t, []string{"btn", "shared", "stack"}, merged.ClassNames())
	assert.Len(t, merged.Classes["shared"], 2, "locations from both files survive")
	assert.True(t, merged.Elements["div"])
	assert.True(t, merged.Elements["span"])
}

func TestUsageAccumulator_UpdateReplaces(t *testing.T) {
	acc := NewUsageAccumulator()
	acc.Update(ScanContent("a.html", `<div class="old"></div>`))
	acc.Update(ScanContent("a.html", `<div class="new"></div>`))

	merged := acc.Merged()
	assert.Equal(t, 1, acc.Len())
	assert.Equal(t, []string{"new"}, merged.ClassNames())
}

func TestUsageAccumulator_Remove(t *testing.T) {
	acc := NewUsageAccumulator()
	acc.Update(ScanContent("a.html", `<div class="keep"></div>`))
	acc.Update(ScanContent("b.html", `<div class="drop"></div>`))

	acc.Remove("b.html")
	assert.Equal(t, []string{"keep"}, acc.Merged().ClassNames())

	// Removing an untracked path is a no-op.
	acc.Remove("never-seen.html")
	assert.Equal(t, 1, acc.Len())
}

func TestUsageAccumulator_MergedIsCached(t *testing.T) {
	acc := NewUsageAccumulator()
	acc.Update(ScanContent("a.html", `<div class="x"></div>`))

	first := acc.Merged()
	second := acc.Merged()
	assert.Same(t, first, second, "unchanged accumulator serves the cached merge")

	acc.Update(ScanContent("b.html", `<div class="y"></div>`))
	third := acc.Merged()
	require.NotSame(t, first, third)
	assert.Equal(t, []string{"x", "y"}, third.ClassNames())
}

func TestUsageAccumulator_KeepDirectivesDeduplicated(t *testing.T) {
	acc := NewUsageAccumulator()
	acc.Update(ScanContent("a.html", "<!-- cssprune:keep btn --accent -->"))
	acc.Update(ScanContent("b.html", "<!-- cssprune:keep btn --accent -->"))

	merged := acc.Merged()
	assert.Equal(t, []string{"btn"}, merged.KeepClasses)
	assert.Equal(t, []string{"--accent"}, merged.KeepVariables)
}
