package csslang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPossibleCSSLiteral(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"opacity:80%", true},
		{"hover:opacity:80%", true},
		{"md:dark:hover:before:opacity:80%", true},
		{"nth-child(2n+1):color:red", true},
		{"btn", false},
		{"btn_primary", false},
		{"plain_token", false},
		{":leading", false},
		{"trailing:", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPossibleCSSLiteral(tt.name), "name %q", tt.name)
	}
}

func TestExtractSegments(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"opacity:80%", []string{"opacity", "80%"}},
		{"md:hover:opacity:80%", []string{"md", "hover", "opacity", "80%"}},
		{"nth-child(2n+1):color:red", []string{"nth-child(2n+1)", "color", "red"}},
		{"width:calc(100%~-~2rem)", []string{"width", "calc(100%~-~2rem)"}},
		{"min-width(calc(50rem)):display:grid", []string{"min-width(calc(50rem))", "display", "grid"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSegments(tt.name), "name %q", tt.name)
	}
}

func TestParseCSSLiteral(t *testing.T) {
	props := NewPropertySet([]string{"opacity", "display", "color", "width", "content"})

	t.Run("bare property value", func(t *testing.T) {
		p, warnings, diag := ParseCSSLiteral("opacity:80%", props)
		require.Nil(t, diag)
		assert.Empty(t, warnings)
		assert.Equal(t, "opacity", p.Property)
		assert.Equal(t, "80%", p.Value)
		assert.Nil(t, p.Media)
		assert.Empty(t, p.States)
	})

	t.Run("full modifier chain", func(t *testing.T) {
		p, _, diag := ParseCSSLiteral("md:dark:hover:before:opacity:80%", props)
		require.Nil(t, diag)
		require.NotNil(t, p.Media)
		assert.Equal(t, "@media (width >= 768px)", p.Media.CSS)
		require.NotNil(t, p.Ancestor)
		assert.Equal(t, ":root.dark", p.Ancestor.CSS)
		require.Len(t, p.States, 1)
		assert.Equal(t, ":hover", p.States[0].CSS)
		require.NotNil(t, p.PseudoElement)
		assert.Equal(t, "::before", p.PseudoElement.CSS)
	})

	t.Run("tilde decodes to space", func(t *testing.T) {
		p, _, diag := ParseCSSLiteral("width:calc(100%~-~2rem)", props)
		require.Nil(t, diag)
		assert.Equal(t, "calc(100% - 2rem)", p.Value)
	})

	t.Run("important gets leading space", func(t *testing.T) {
		p, _, diag := ParseCSSLiteral("display:none!important", props)
		require.Nil(t, diag)
		assert.Equal(t, "none !important", p.Value)
	})

	t.Run("arbitrary breakpoint", func(t *testing.T) {
		p, _, diag := ParseCSSLiteral("min-width(800px):display:grid", props)
		require.Nil(t, diag)
		require.NotNil(t, p.Media)
		assert.Equal(t, "@media (width >= 800px)", p.Media.CSS)
	})

	t.Run("nil property set skips validation", func(t *testing.T) {
		p, _, diag := ParseCSSLiteral("madeupprop:1", nil)
		require.Nil(t, diag)
		assert.Equal(t, "madeupprop", p.Property)
	})

	t.Run("custom property always valid", func(t *testing.T) {
		_, _, diag := ParseCSSLiteral("--my-var:12px", props)
		assert.Nil(t, diag)
	})
}

func TestParseCSSLiteral_Errors(t *testing.T) {
	props := NewPropertySet([]string{"opacity", "display", "color"})

	tests := []struct {
		name        string
		className   string
		wantMessage string
		wantSuggest string
	}{
		{
			name:        "unknown modifier with suggestion",
			className:   "hoover:opacity:80%",
			wantMessage: `Unknown modifier "hoover"`,
			wantSuggest: "hover",
		},
		{
			name:        "unknown property with suggestion",
			className:   "dipslay:flex",
			wantMessage: `Unknown CSS property "dipslay"`,
			wantSuggest: "display",
		},
		{
			name:        "states out of order",
			className:   "hover:focus:opacity:80%",
			wantMessage: `State modifiers must be in alphabetical order: "focus" must come before "hover"`,
		},
		{
			name:        "duplicate state",
			className:   "hover:hover:opacity:80%",
			wantMessage: `Duplicate state modifier "hover"`,
		},
		{
			name:        "media after state",
			className:   "hover:md:opacity:80%",
			wantMessage: "media modifiers must come before",
		},
		{
			name:        "two ancestors",
			className:   "dark:light:opacity:80%",
			wantMessage: `"dark" and "light" are mutually exclusive`,
		},
		{
			name:        "empty value segment",
			className:   "opacity:",
			wantMessage: "Malformed CSS literal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, diag := ParseCSSLiteral(tt.className, props)
			require.NotNil(t, diag)
			assert.Equal(t, LevelError, diag.Level)
			assert.Contains(t, diag.Message, tt.wantMessage)
			if tt.wantSuggest != "" {
				assert.Equal(t, tt.wantSuggest, diag.Suggestion)
			}
		})
	}
}

func TestParseCSSLiteral_StateOrderAccepted(t *testing.T) {
	props := NewPropertySet([]string{"opacity"})

	// Alphabetical input order is required even when cascade precedence
	// differs: "focus" parses before "hover", and "hover" before
	// "visited" despite visited ranking lowest in output order.
	_, _, diag := ParseCSSLiteral("focus:hover:opacity:80%", props)
	assert.Nil(t, diag)

	p, _, diag := ParseCSSLiteral("hover:visited:opacity:80%", props)
	require.Nil(t, diag)
	assert.Equal(t, 5, StatePrecedence(p.States), "hover outranks visited")
}

func TestCheckCalcExpression(t *testing.T) {
	w := CheckCalcExpression("x", "calc(100%-2rem)")
	require.NotNil(t, w)
	assert.Equal(t, LevelWarning, w.Level)
	assert.Contains(t, w.Message, "spaces around")

	assert.Nil(t, CheckCalcExpression("x", "calc(100% - 2rem)"))
	assert.Nil(t, CheckCalcExpression("x", "100%"))
}

func TestEscapeClassName(t *testing.T) {
	assert.Equal(t, "btn_primary", EscapeClassName("btn_primary"))
	assert.Equal(t, `opacity\:80\%`, EscapeClassName("opacity:80%"))
	assert.Equal(t, `nth-child\(2n\+1\)\:color\:red`, EscapeClassName("nth-child(2n+1):color:red"))
}

func TestInterpretCSSLiteral(t *testing.T) {
	props := NewPropertySet([]string{"opacity"})

	p, _, diag := ParseCSSLiteral("md:dark:hover:before:opacity:80%", props)
	require.Nil(t, diag)

	rule := InterpretCSSLiteral(p)
	assert.Equal(t, `.md\:dark\:hover\:before\:opacity\:80\%:hover::before`, rule.Selector)
	assert.Equal(t, "opacity: 80%;", rule.Declarations)
	assert.Equal(t, "@media (width >= 768px)", rule.MediaWrapper)
	assert.Equal(t, ":root.dark", rule.AncestorWrapper)

	css := rule.CSS()
	assert.Contains(t, css, "@media (width >= 768px) {")
	assert.Contains(t, css, `:root.dark .md\:dark\:hover\:before\:opacity\:80\%:hover::before { opacity: 80%; }`)
}
