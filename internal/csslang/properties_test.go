package csslang

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertySet(t *testing.T) {
	s := NewPropertySet([]string{"Display", "opacity", "opacity", " color ", ""})

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("display"))
	assert.True(t, s.Has("OPACITY"))
	assert.False(t, s.Has("dipslay"))
	assert.True(t, s.Has("--anything"), "custom properties always pass")
	assert.Equal(t, "display", s.Suggest("dipslay"))
	assert.Empty(t, s.Suggest("zzzzzz"))
}

func TestPropertySet_NilAcceptsEverything(t *testing.T) {
	var s *PropertySet
	assert.True(t, s.Has("anything"))
	assert.Empty(t, s.Suggest("anything"))
	assert.Zero(t, s.Len())
}

func TestLoadPropertySet_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.json")
	require.NoError(t, os.WriteFile(path, []byte(`["display", "opacity"]`), 0644))

	s, err := LoadPropertySet(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("display"))
}

func TestLoadPropertySet_LineOriented(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.txt")
	content := "# standard properties\ndisplay\nopacity\n\ncolor\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadPropertySet(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("color"))
	assert.False(t, s.Has("# standard properties"))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"hover", "focus", "active"}
	assert.Equal(t, "hover", Suggest("hoover", candidates))
	assert.Equal(t, "focus", Suggest("focsu", candidates))
	assert.Empty(t, Suggest("completely-different", candidates))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("same", "same"))
	assert.Equal(t, 4, levenshtein("", "four"))
	assert.Equal(t, 1, levenshtein("hover", "hoover"))
	assert.Equal(t, 2, levenshtein("focus", "focsu"))
}
