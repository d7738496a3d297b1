package csslang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolverDefs() *ClassMap {
	return defsFrom(map[string]*ClassDef{
		"btn":         {Declaration: "cursor: pointer"},
		"btn_primary": {Composes: []string{"btn"}, Declaration: "background: var(--color-primary)"},
		"card": {Ruleset: `
			.card { border: 1px solid var(--color-border); }
			.card .title { font-weight: 600; }
		`},
	}, "btn", "btn_primary", "card")
}

func resolverVars() VariableTable {
	return VariableTable{
		"--color-primary": {Light: "#2563eb", Dark: "#60a5fa"},
		"--color-border":  {Light: "#e2e8f0", Dark: "#334155"},
		"--radius":        {Light: "0.375rem"},
	}
}

func allOutputs() Options {
	return Options{IncludeTheme: true, IncludeBase: true, IncludeUtilities: true}
}

func TestResolveCSS_Dispatch(t *testing.T) {
	input := ResolveInput{
		Implicit: []string{
			"btn_primary",        // definition
			"card",               // ruleset definition
			"hover:btn",          // modified class
			"opacity:80%",        // CSS literal
			"mystery_class",      // unknown, implicit, silent
		},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
	}

	res := ResolveCSS(input, allOutputs())

	var names []string
	for _, rc := range res.Classes {
		names = append(names, rc.Name)
	}
	assert.Equal(t, []string{"btn_primary", "card", "opacity:80%", "hover:btn"}, names,
		"hover-precedence classes sort after rest-state classes")
	assert.Equal(t, []string{"mystery_class"}, res.Unknown)
	assert.Empty(t, res.Diagnostics)
}

func TestResolveCSS_ExplicitUnknownIsError(t *testing.T) {
	input := ResolveInput{
		Explicit:    []string{"btm"},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
	}

	res := ResolveCSS(input, allOutputs())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, LevelError, res.Diagnostics[0].Level)
	assert.Contains(t, res.Diagnostics[0].Message, `Unknown class "btm"`)
	assert.Equal(t, "btn", res.Diagnostics[0].Suggestion)
	assert.True(t, res.HasErrors())
}

func TestResolveCSS_ImplicitFailureDowngrades(t *testing.T) {
	props := NewPropertySet([]string{"opacity"})
	input := ResolveInput{
		Implicit:        []string{"hover:focus:opacity:80%"},
		Definitions:     NewClassMap(),
		KnownProperties: props,
	}

	res := ResolveCSS(input, allOutputs())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, LevelWarning, res.Diagnostics[0].Level,
		"a malformed literal from scanning warns instead of failing the build")
	assert.False(t, res.HasErrors())

	// The same name requested explicitly stays an error.
	res = ResolveCSS(ResolveInput{
		Explicit:        []string{"hover:focus:opacity:80%"},
		Definitions:     NewClassMap(),
		KnownProperties: props,
	}, allOutputs())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, LevelError, res.Diagnostics[0].Level)
}

func TestResolveCSS_PartialSuccess(t *testing.T) {
	// One failing class never blocks its siblings.
	input := ResolveInput{
		Explicit:    []string{"btn", "btm", "card"},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
	}

	res := ResolveCSS(input, allOutputs())
	assert.Len(t, res.Classes, 2)
	assert.True(t, res.HasErrors())
	assert.Contains(t, res.UtilityCSS, ".btn {")
	assert.Contains(t, res.UtilityCSS, ".card {")
}

func TestResolveCSS_UtilityOrdering(t *testing.T) {
	props := NewPropertySet([]string{"opacity", "color"})
	input := ResolveInput{
		Implicit: []string{
			"hover:opacity:50%",
			"active:opacity:60%",
			"opacity:80%",
			"visited:color:purple",
		},
		Definitions:     NewClassMap(),
		KnownProperties: props,
	}

	res := ResolveCSS(input, allOutputs())
	require.Len(t, res.Classes, 4)

	var names []string
	for _, rc := range res.Classes {
		names = append(names, rc.Name)
	}
	// rest (0) < visited (1) < hover (5) < active (6)
	assert.Equal(t, []string{"opacity:80%", "visited:color:purple", "hover:opacity:50%", "active:opacity:60%"}, names)
}

func TestResolveCSS_ThemeCSS(t *testing.T) {
	input := ResolveInput{
		Implicit:    []string{"btn_primary"},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
	}

	res := ResolveCSS(input, allOutputs())
	require.NotNil(t, res.Variables)
	assert.Equal(t, []string{"--color-primary"}, res.Variables.Resolved)

	assert.Contains(t, res.ThemeCSS, ":root {\n  --color-primary: #2563eb;\n}")
	assert.Contains(t, res.ThemeCSS, ":root.dark {\n  --color-primary: #60a5fa;\n}")
	assert.NotContains(t, res.ThemeCSS, "--radius", "unreferenced variables are pruned")
}

func TestResolveCSS_ThemeSpecificity(t *testing.T) {
	input := ResolveInput{
		Implicit:    []string{"btn_primary"},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
	}
	opts := allOutputs()
	opts.ThemeSpecificity = 2

	res := ResolveCSS(input, opts)
	assert.Contains(t, res.ThemeCSS, ":root:root {")
	assert.Contains(t, res.ThemeCSS, ":root:root.dark {")
}

func TestResolveCSS_ForcedVariables(t *testing.T) {
	input := ResolveInput{
		Definitions:     resolverDefs(),
		Variables:       resolverVars(),
		Explicit:        []string{"btn"},
		ForcedVariables: []string{"--radius"},
	}

	res := ResolveCSS(input, allOutputs())
	assert.Contains(t, res.Variables.Resolved, "--radius")
	assert.Contains(t, res.ThemeCSS, "--radius: 0.375rem;")
}

func TestResolveCSS_BaseSection(t *testing.T) {
	idx := ParseStyleCSS(testSheet, HashContent(testSheet))
	input := ResolveInput{
		Implicit:    []string{"btn"},
		Elements:    map[string]bool{"button": true},
		Classes:     map[string]bool{"primary": true},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
		BaseIndex:   idx,
	}

	res := ResolveCSS(input, allOutputs())
	assert.Contains(t, res.BaseCSS, "button.primary {")
	assert.NotContains(t, res.BaseCSS, "h1")

	// Base rule variables seed the theme closure.
	assert.Contains(t, res.Variables.Resolved, "--color-primary")
	assert.Contains(t, res.Variables.Resolved, "--color-fg")
}

func TestResolveCSS_UnmatchedElementWarnings(t *testing.T) {
	idx := ParseStyleCSS("button { cursor: pointer; }", HashContent(""))
	input := ResolveInput{
		Elements:    map[string]bool{"button": true, "dialog": true},
		Classes:     map[string]bool{},
		Explicit:    []string{"btn"},
		Definitions: resolverDefs(),
		BaseIndex:   idx,
	}
	opts := allOutputs()
	opts.WarnUnmatchedElements = true

	res := ResolveCSS(input, opts)

	var found bool
	for _, d := range res.Diagnostics {
		if strings.Contains(d.Message, `Element "dialog"`) {
			found = true
			assert.Equal(t, LevelWarning, d.Level)
		}
		assert.NotContains(t, d.Message, `Element "button"`)
	}
	assert.True(t, found)
}

func TestGenerateUnifiedCSS(t *testing.T) {
	input := ResolveInput{
		Implicit:    []string{"btn_primary"},
		Definitions: resolverDefs(),
		Variables:   resolverVars(),
	}

	res := ResolveCSS(input, allOutputs())
	css := GenerateUnifiedCSS(res)

	themeIdx := strings.Index(css, "/* Theme Variables */")
	utilIdx := strings.Index(css, "/* Utility Classes */")
	require.GreaterOrEqual(t, themeIdx, 0)
	require.Greater(t, utilIdx, themeIdx)
	assert.NotContains(t, css, "/* Base Styles */", "empty sections are omitted")
}

func TestGenerateUnifiedCSS_AllEmpty(t *testing.T) {
	res := ResolveCSS(ResolveInput{Definitions: NewClassMap()}, Options{})
	assert.Empty(t, GenerateUnifiedCSS(res))
}

func TestResolveCSS_DuplicateRequestResolvedOnce(t *testing.T) {
	input := ResolveInput{
		Explicit:    []string{"btn"},
		Implicit:    []string{"btn"},
		Definitions: resolverDefs(),
	}
	res := ResolveCSS(input, allOutputs())
	assert.Len(t, res.Classes, 1)
}
