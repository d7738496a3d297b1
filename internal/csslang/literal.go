package csslang

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenNamePattern matches the plain token naming convention used for
// regular (non-literal) utility class names.
var tokenNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// IsPossibleCSSLiteral is a cheap pre-filter: a literal must contain a
// colon, must not look like a plain token name, and must have non-empty
// first and last colon-segments.
func IsPossibleCSSLiteral(name string) bool {
	if !strings.Contains(name, ":") {
		return false
	}
	if tokenNamePattern.MatchString(name) {
		return false
	}
	segments := ExtractSegments(name)
	if len(segments) < 2 {
		return false
	}
	return segments[0] != "" && segments[len(segments)-1] != ""
}

// ExtractSegments splits a class name on ':' while treating
// parenthesized spans as atomic, so "nth-child(2n+1):color:red"
// yields ["nth-child(2n+1)", "color", "red"].
func ExtractSegments(name string) []string {
	var segments []string
	var current strings.Builder
	depth := 0

	for _, r := range name {
		switch r {
		case '(':
			depth++
			current.WriteRune(r)
		case ')':
			depth--
			current.WriteRune(r)
		case ':':
			if depth == 0 {
				segments = append(segments, current.String())
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	segments = append(segments, current.String())
	return segments
}

// modifierSet is the validated modifier prefix of a class name.
type modifierSet struct {
	media         *Modifier
	ancestor      *Modifier
	states        []Modifier
	pseudoElement *Modifier
}

func modifierTypeName(t ModifierType) string {
	switch t {
	case ModifierMedia:
		return "media"
	case ModifierAncestor:
		return "ancestor"
	case ModifierState:
		return "state"
	default:
		return "pseudo-element"
	}
}

// extractModifiers consumes a modifier prefix from the front of
// segments, stopping at the first non-modifier segment. It enforces
// the grammar: media before ancestor before states before
// pseudo-element; at most one media, ancestor, and pseudo-element;
// states in non-decreasing lexicographic order by modifier name.
// Returns the set, the number of segments consumed, and the first
// structural error encountered.
func extractModifiers(segments []string, className string) (modifierSet, int, *Diagnostic) {
	var set modifierSet
	consumed := 0

	for _, seg := range segments {
		m := GetModifier(seg)
		if m == nil {
			break
		}

		switch m.Type {
		case ModifierMedia:
			if set.media != nil {
				return set, consumed, &Diagnostic{
					Level:     LevelError,
					Phase:     PhaseGeneration,
					ClassName: className,
					Message:   fmt.Sprintf("Duplicate media modifier %q: at most one media modifier is allowed", m.Name),
				}
			}
			if set.ancestor != nil || len(set.states) > 0 || set.pseudoElement != nil {
				return set, consumed, orderingError(className, m)
			}
			set.media = m

		case ModifierAncestor:
			if set.ancestor != nil {
				return set, consumed, &Diagnostic{
					Level:     LevelError,
					Phase:     PhaseGeneration,
					ClassName: className,
					Message:   fmt.Sprintf("Modifiers %q and %q are mutually exclusive", set.ancestor.Name, m.Name),
				}
			}
			if len(set.states) > 0 || set.pseudoElement != nil {
				return set, consumed, orderingError(className, m)
			}
			set.ancestor = m

		case ModifierState:
			if set.pseudoElement != nil {
				return set, consumed, orderingError(className, m)
			}
			if n := len(set.states); n > 0 {
				prev := set.states[n-1].Name
				if m.Name == prev {
					return set, consumed, &Diagnostic{
						Level:     LevelError,
						Phase:     PhaseGeneration,
						ClassName: className,
						Message:   fmt.Sprintf("Duplicate state modifier %q", m.Name),
					}
				}
				if m.Name < prev {
					return set, consumed, &Diagnostic{
						Level:     LevelError,
						Phase:     PhaseGeneration,
						ClassName: className,
						Message:   fmt.Sprintf("State modifiers must be in alphabetical order: %q must come before %q", m.Name, prev),
					}
				}
			}
			set.states = append(set.states, *m)

		case ModifierPseudoElement:
			if set.pseudoElement != nil {
				return set, consumed, &Diagnostic{
					Level:     LevelError,
					Phase:     PhaseGeneration,
					ClassName: className,
					Message:   fmt.Sprintf("Duplicate pseudo-element modifier %q: at most one pseudo-element is allowed", m.Name),
				}
			}
			set.pseudoElement = m
		}

		consumed++
	}

	return set, consumed, nil
}

func orderingError(className string, m *Modifier) *Diagnostic {
	return &Diagnostic{
		Level:     LevelError,
		Phase:     PhaseGeneration,
		ClassName: className,
		Message: fmt.Sprintf("Invalid modifier order in %q: %s modifiers must come before %s modifiers (order: media, ancestor, states, pseudo-element)",
			className, modifierTypeName(m.Type), laterTypes(m.Type)),
	}
}

func laterTypes(t ModifierType) string {
	switch t {
	case ModifierMedia:
		return "ancestor, state, and pseudo-element"
	case ModifierAncestor:
		return "state and pseudo-element"
	default:
		return "pseudo-element"
	}
}

// ParseCSSLiteral parses a CSS-literal class name into its structured
// form. The last two segments are property and value; everything
// before must be modifiers. knownProperties may be nil, which skips
// property validation entirely (the "list not loaded yet" mode).
// Returns the literal, any non-fatal warnings, and a structural error.
func ParseCSSLiteral(name string, knownProperties *PropertySet) (*ParsedLiteral, []Diagnostic, *Diagnostic) {
	segments := ExtractSegments(name)
	if len(segments) < 2 || segments[len(segments)-1] == "" || segments[len(segments)-2] == "" {
		return nil, nil, &Diagnostic{
			Level:     LevelError,
			Phase:     PhaseGeneration,
			ClassName: name,
			Message:   fmt.Sprintf("Malformed CSS literal %q: expected [modifiers:]property:value", name),
		}
	}

	modSegments := segments[:len(segments)-2]
	property := segments[len(segments)-2]
	rawValue := segments[len(segments)-1]

	set, consumed, diag := extractModifiers(modSegments, name)
	if diag != nil {
		return nil, nil, diag
	}
	if consumed < len(modSegments) {
		unknown := modSegments[consumed]
		return nil, nil, &Diagnostic{
			Level:      LevelError,
			Phase:      PhaseGeneration,
			ClassName:  name,
			Message:    fmt.Sprintf("Unknown modifier %q in class %q", unknown, name),
			Suggestion: Suggest(unknown, GetAllModifierNames()),
		}
	}

	if !knownProperties.Has(property) {
		return nil, nil, &Diagnostic{
			Level:      LevelError,
			Phase:      PhaseGeneration,
			ClassName:  name,
			Message:    fmt.Sprintf("Unknown CSS property %q", property),
			Suggestion: knownProperties.Suggest(property),
		}
	}

	value := FormatCSSValue(rawValue)

	var warnings []Diagnostic
	if w := CheckCalcExpression(name, value); w != nil {
		warnings = append(warnings, *w)
	}

	return &ParsedLiteral{
		ClassName:     name,
		Media:         set.media,
		Ancestor:      set.ancestor,
		States:        set.states,
		PseudoElement: set.pseudoElement,
		Property:      property,
		Value:         value,
	}, warnings, nil
}

// FormatCSSValue decodes the value encoding used inside class names:
// '~' stands for a literal space (multi-token values in a single
// token), and a trailing !important gets its required leading space.
func FormatCSSValue(value string) string {
	v := strings.ReplaceAll(value, "~", " ")
	if strings.HasSuffix(v, "!important") && !strings.HasSuffix(v, " !important") {
		v = strings.TrimSuffix(v, "!important") + " !important"
	}
	return v
}

var calcOperatorPattern = regexp.MustCompile(`[0-9][+-]`)

// CheckCalcExpression flags calc() expressions where a digit is
// immediately followed by '+' or '-': CSS requires spaces around
// binary +/- inside calc(). A heuristic, so a warning rather than an
// error (nth-style "2n+1" arguments are legitimate matches).
func CheckCalcExpression(className, value string) *Diagnostic {
	idx := strings.Index(value, "calc(")
	for idx >= 0 {
		rest := value[idx:]
		end := matchingParenEnd(rest)
		if end < 0 {
			break
		}
		if calcOperatorPattern.MatchString(rest[:end+1]) {
			return &Diagnostic{
				Level:     LevelWarning,
				Phase:     PhaseGeneration,
				ClassName: className,
				Message:   fmt.Sprintf("calc() expression in %q may be invalid: CSS requires spaces around \"+\" and \"-\" operators", value),
			}
		}
		next := strings.Index(rest[end+1:], "calc(")
		if next < 0 {
			break
		}
		idx += end + 1 + next
	}
	return nil
}

// matchingParenEnd returns the index of the ')' closing the first '('
// in s, or -1 when unbalanced.
func matchingParenEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// EscapeClassName escapes a class name for use in a selector: every
// byte outside [A-Za-z0-9_-] is backslash-escaped.
func EscapeClassName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		isPlain := c == '-' || c == '_' ||
			(c >= '0' && c <= '9') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z')
		if !isPlain {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// GenerateSelector assembles the selector for a parsed literal: the
// escaped class, state suffixes in parsed order, pseudo-element last.
func GenerateSelector(p *ParsedLiteral) string {
	var b strings.Builder
	b.WriteByte('.')
	b.WriteString(EscapeClassName(p.ClassName))
	for _, s := range p.States {
		b.WriteString(s.CSS)
	}
	if p.PseudoElement != nil {
		b.WriteString(p.PseudoElement.CSS)
	}
	return b.String()
}

// GenerateDeclaration renders the literal's property/value pair.
func GenerateDeclaration(p *ParsedLiteral) string {
	return p.Property + ": " + p.Value + ";"
}

// InterpretCSSLiteral turns a parsed literal into a rule plus the
// media/ancestor wrappers the caller applies around it.
func InterpretCSSLiteral(p *ParsedLiteral) Rule {
	r := Rule{
		Selector:     GenerateSelector(p),
		Declarations: GenerateDeclaration(p),
	}
	if p.Media != nil {
		r.MediaWrapper = p.Media.CSS
	}
	if p.Ancestor != nil {
		r.AncestorWrapper = p.Ancestor.CSS
	}
	return r
}

// StatePrecedence returns the cascade rank of the literal's strongest
// interaction-state modifier, or 0 when none is present. The generator
// sorts emitted classes by this before falling back to name order.
func StatePrecedence(states []Modifier) int {
	max := 0
	for _, s := range states {
		if s.Order > max {
			max = s.Order
		}
	}
	return max
}
