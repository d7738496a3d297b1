package csslang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretModifiedClass_Declaration(t *testing.T) {
	defs := defsFrom(map[string]*ClassDef{
		"btn": {Declaration: "cursor: pointer"},
	}, "btn")

	mc, warnings, diag := InterpretModifiedClass("md:dark:hover:btn", defs, nil)
	require.Nil(t, diag)
	assert.Empty(t, warnings)
	require.NotNil(t, mc)
	assert.Equal(t, "btn", mc.BaseClass)
	assert.Equal(t, 5, mc.Precedence)

	require.Len(t, mc.Rules, 1)
	rule := mc.Rules[0]
	assert.Equal(t, `.md\:dark\:hover\:btn:hover`, rule.Selector)
	assert.Equal(t, "cursor: pointer;", rule.Declarations)
	assert.Equal(t, "@media (width >= 768px)", rule.MediaWrapper)
	assert.Equal(t, ":root.dark", rule.AncestorWrapper)
}

func TestInterpretModifiedClass_NotApplicable(t *testing.T) {
	defs := defsFrom(map[string]*ClassDef{
		"btn": {Declaration: "cursor: pointer"},
	}, "btn")

	tests := []struct {
		name      string
		className string
	}{
		{"no modifier prefix", "btn"},
		{"unknown base class", "hover:mystery"},
		{"prefix is not a modifier, possible literal", "opacity:80%"},
		{"middle segment not a modifier", "md:opacity:btn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc, warnings, diag := InterpretModifiedClass(tt.className, defs, nil)
			assert.Nil(t, mc)
			assert.Nil(t, warnings)
			assert.Nil(t, diag)
		})
	}
}

func TestInterpretModifiedClass_ModifierErrorsSurface(t *testing.T) {
	defs := defsFrom(map[string]*ClassDef{
		"btn": {Declaration: "cursor: pointer"},
	}, "btn")

	_, _, diag := InterpretModifiedClass("hover:focus:btn", defs, nil)
	require.NotNil(t, diag)
	assert.Contains(t, diag.Message, "alphabetical order")
}

func TestInterpretModifiedClass_RulesetFanOut(t *testing.T) {
	defs := defsFrom(map[string]*ClassDef{
		"card": {Ruleset: `
			.card { border: 1px solid var(--color-border); }
			.card .title, .card .subtitle { color: var(--color-fg); }
		`},
	}, "card")

	mc, warnings, diag := InterpretModifiedClass("hover:card", defs, nil)
	require.Nil(t, diag)
	assert.Empty(t, warnings)
	require.Len(t, mc.Rules, 2)

	assert.Equal(t, `.hover\:card:hover`, mc.Rules[0].Selector)
	assert.Contains(t, mc.Rules[0].Declarations, "border: 1px solid")
	assert.Equal(t, `.hover\:card:hover .title, .hover\:card:hover .subtitle`, mc.Rules[1].Selector)
}

func TestInterpretModifiedClass_SkipsSelfCompounding(t *testing.T) {
	// A selector that already carries :hover must not become
	// :hover:hover; it is skipped with a warning. Selectors carrying a
	// different state keep it and gain the new one.
	defs := defsFrom(map[string]*ClassDef{
		"link": {Ruleset: `
			.link { color: var(--color-primary); }
			.link:hover { text-decoration: underline; }
			.link:active { color: red; }
		`},
	}, "link")

	mc, warnings, diag := InterpretModifiedClass("hover:link", defs, nil)
	require.Nil(t, diag)

	require.Len(t, warnings, 1)
	assert.Equal(t, LevelWarning, warnings[0].Level)
	assert.Contains(t, warnings[0].Message, "already includes :hover")
	assert.Contains(t, warnings[0].Message, "skipping redundant rule")

	require.Len(t, mc.Rules, 2)
	assert.Equal(t, `.hover\:link:hover`, mc.Rules[0].Selector)
	assert.Equal(t, `.hover\:link:active:hover`, mc.Rules[1].Selector)
}

func TestInterpretModifiedClass_PseudoElementPlacement(t *testing.T) {
	defs := defsFrom(map[string]*ClassDef{
		"tip": {Ruleset: `.tip::after { content: ""; }`},
	}, "tip")

	// State suffix lands before the existing pseudo-element.
	mc, warnings, diag := InterpretModifiedClass("hover:tip", defs, nil)
	require.Nil(t, diag)
	assert.Empty(t, warnings)
	require.Len(t, mc.Rules, 1)
	assert.Equal(t, `.hover\:tip:hover::after`, mc.Rules[0].Selector)

	// Applying ::after to a selector that already ends in ::after is
	// skipped with a warning, which here empties the whole ruleset.
	mc, warnings, diag = InterpretModifiedClass("after:tip", defs, nil)
	require.Nil(t, diag)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "already includes ::after")
	assert.Empty(t, mc.Rules)
}

func TestInterpretModifiedClass_TokenBoundary(t *testing.T) {
	// ".btn" inside ".btn-icon" must not be rewritten; a raw rule whose
	// selectors never mention the base class is dropped.
	defs := defsFrom(map[string]*ClassDef{
		"btn": {Ruleset: `
			.btn { cursor: pointer; }
			.btn-icon { margin-right: 4px; }
		`},
	}, "btn")

	mc, _, diag := InterpretModifiedClass("focus:btn", defs, nil)
	require.Nil(t, diag)
	require.Len(t, mc.Rules, 1)
	assert.Equal(t, `.focus\:btn:focus`, mc.Rules[0].Selector)
}

func TestInterpretModifiedClass_PatternBase(t *testing.T) {
	defs := DefaultDefinitions()

	mc, warnings, diag := InterpretModifiedClass("md:gap-4", defs, nil)
	require.Nil(t, diag)
	assert.Empty(t, warnings)
	require.Len(t, mc.Rules, 1)
	assert.Equal(t, `.md\:gap-4`, mc.Rules[0].Selector)
	assert.Equal(t, "gap: 1rem;", mc.Rules[0].Declarations)
	assert.Equal(t, "@media (width >= 768px)", mc.Rules[0].MediaWrapper)
}

func TestInterpretModifiedClass_ComposeErrorsSurface(t *testing.T) {
	defs := defsFrom(map[string]*ClassDef{
		"a": {Composes: []string{"b"}},
		"b": {Composes: []string{"a"}},
	}, "a", "b")

	_, _, diag := InterpretModifiedClass("hover:a", defs, nil)
	require.NotNil(t, diag)
	assert.Contains(t, diag.Message, "Circular reference detected")
}

func TestSelectorHasPseudo(t *testing.T) {
	tests := []struct {
		selector string
		pseudo   string
		want     bool
	}{
		{".a:hover", ":hover", true},
		{".a:hover .b", ":hover", true},
		{".a:focus-within", ":focus", false},
		{".a::before", ":before", false},
		{".a::after", "::after", true},
		{".a:nth-child(2n):hover", ":hover", true},
		{".a:not(:hover)", ":hover", true},
		{".plain", ":hover", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, selectorHasPseudo(tt.selector, tt.pseudo),
			"selector %q pseudo %q", tt.selector, tt.pseudo)
	}
}
