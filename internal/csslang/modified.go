package csslang

import (
	"fmt"
	"strings"
)

// ModifiedClass is the result of applying a modifier prefix to a known
// base class: every constituent rule re-emitted under the modified
// class name with the modifier wrapping/suffixing applied.
type ModifiedClass struct {
	Name      string
	BaseClass string
	Rules     []Rule
	// Precedence is the cascade rank of the strongest interaction
	// state applied, 0 when none.
	Precedence int
}

// InterpretModifiedClass resolves "modifier:...:baseclass" names. A
// registered class name always wins over CSS-literal interpretation of
// the same token, so this runs before the literal interpreter. It
// returns (nil, nil, nil) when not applicable: the name carries no
// modifier prefix, some prefix segment is not a modifier (the token may
// be a CSS literal instead), or the base class is entirely unknown.
// Errors from resolving the base class surface verbatim.
func InterpretModifiedClass(name string, definitions *ClassMap, knownProperties *PropertySet) (*ModifiedClass, []Diagnostic, *Diagnostic) {
	segments := ExtractSegments(name)
	if len(segments) < 2 {
		return nil, nil, nil
	}

	base := segments[len(segments)-1]
	modSegments := segments[:len(segments)-1]

	for _, seg := range modSegments {
		if GetModifier(seg) == nil {
			return nil, nil, nil
		}
	}

	def, ok := definitions.Get(base)
	var patternMatch []string
	if !ok {
		def, patternMatch = definitions.MatchPattern(base)
		if def == nil {
			return nil, nil, nil
		}
	}

	set, consumed, diag := extractModifiers(modSegments, name)
	if diag != nil {
		return nil, nil, diag
	}
	if consumed < len(modSegments) {
		return nil, nil, nil
	}

	mc := &ModifiedClass{
		Name:       name,
		BaseClass:  base,
		Precedence: StatePrecedence(set.states),
	}

	if def.Kind() == DefRuleset {
		rules, warnings := fanOutRuleset(name, base, def.Ruleset, set)
		mc.Rules = rules
		return mc, warnings, nil
	}

	var declaration string
	var warnings []Diagnostic
	switch def.Kind() {
	case DefPattern:
		decl, err := def.Interpret(base, patternMatch)
		if err != nil {
			return nil, nil, &Diagnostic{
				Level:     LevelError,
				Phase:     PhaseGeneration,
				ClassName: name,
				Message:   fmt.Sprintf("Interpreting class %q: %v", base, err),
			}
		}
		declaration = decl
	default:
		decl, w, derr := ResolveClassDeclaration(base, definitions)
		if derr != nil {
			return nil, w, derr
		}
		declaration = decl
		warnings = w
	}

	selector := "." + EscapeClassName(name)
	for _, s := range set.states {
		selector += s.CSS
	}
	if set.pseudoElement != nil {
		selector += set.pseudoElement.CSS
	}

	mc.Rules = []Rule{wrapRule(Rule{Selector: selector, Declarations: declaration}, set)}
	return mc, warnings, nil
}

// fanOutRuleset rewrites every rule of a multi-selector ruleset for the
// modified class name. Selectors that already encode a state (or
// pseudo-element) being applied are skipped with a warning instead of
// compounding it onto itself; selectors carrying other states are kept
// and compounded (":active" + hover → ":active:hover").
func fanOutRuleset(name, base, ruleset string, set modifierSet) ([]Rule, []Diagnostic) {
	escaped := EscapeClassName(name)
	var rules []Rule
	var warnings []Diagnostic

	for _, raw := range SplitRuleset(ruleset) {
		var kept []string

	selectors:
		for _, sel := range raw.Selectors {
			rewritten, found := replaceClassToken(sel, base, escaped)
			if !found {
				continue
			}

			for _, state := range set.states {
				if selectorHasPseudo(rewritten, state.CSS) {
					warnings = append(warnings, Diagnostic{
						Level:     LevelWarning,
						Phase:     PhaseGeneration,
						ClassName: name,
						Message:   fmt.Sprintf("Selector %q already includes %s; skipping redundant rule", sel, state.CSS),
					})
					continue selectors
				}
			}

			suffix := ""
			for _, state := range set.states {
				suffix += state.CSS
			}
			rewritten = insertBeforePseudoElement(rewritten, suffix)

			if set.pseudoElement != nil {
				if selectorHasPseudo(rewritten, set.pseudoElement.CSS) {
					warnings = append(warnings, Diagnostic{
						Level:     LevelWarning,
						Phase:     PhaseGeneration,
						ClassName: name,
						Message:   fmt.Sprintf("Selector %q already includes %s; skipping redundant rule", sel, set.pseudoElement.CSS),
					})
					continue selectors
				}
				rewritten += set.pseudoElement.CSS
			}

			kept = append(kept, rewritten)
		}

		if len(kept) == 0 {
			continue
		}
		rules = append(rules, wrapRule(Rule{
			Selector:     strings.Join(kept, ", "),
			Declarations: raw.Body,
		}, set))
	}

	return rules, warnings
}

func wrapRule(r Rule, set modifierSet) Rule {
	if set.media != nil {
		r.MediaWrapper = set.media.CSS
	}
	if set.ancestor != nil {
		r.AncestorWrapper = set.ancestor.CSS
	}
	return r
}

// replaceClassToken substitutes ".base" tokens in a selector with the
// escaped modified class, respecting token boundaries so ".btn" never
// rewrites ".btn-icon".
func replaceClassToken(selector, base, escaped string) (string, bool) {
	token := "." + base
	var b strings.Builder
	found := false
	i := 0
	for i < len(selector) {
		if strings.HasPrefix(selector[i:], token) && !isIdentByte(byteAt(selector, i+len(token))) {
			b.WriteByte('.')
			b.WriteString(escaped)
			i += len(token)
			found = true
			continue
		}
		b.WriteByte(selector[i])
		i++
	}
	return b.String(), found
}

// selectorHasPseudo reports whether a selector already contains the
// given pseudo suffix (":hover", "::before") as a whole token.
func selectorHasPseudo(selector, pseudo string) bool {
	for i := 0; i+len(pseudo) <= len(selector); {
		idx := strings.Index(selector[i:], pseudo)
		if idx < 0 {
			return false
		}
		pos := i + idx
		after := byteAt(selector, pos+len(pseudo))
		// ":focus" must not match inside ":focus-within", and a single
		// colon match must not land inside a "::" pseudo-element.
		doubled := !strings.HasPrefix(pseudo, "::") && byteAt(selector, pos-1) == ':'
		if !isIdentByte(after) && after != '(' && !doubled {
			return true
		}
		i = pos + 1
	}
	return false
}

// insertBeforePseudoElement places suffix after the selector's
// pseudo-classes but before any existing pseudo-element.
func insertBeforePseudoElement(selector, suffix string) string {
	if suffix == "" {
		return selector
	}
	if idx := strings.Index(selector, "::"); idx >= 0 {
		return selector[:idx] + suffix + selector[idx:]
	}
	return selector + suffix
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
}
