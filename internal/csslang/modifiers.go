package csslang

import (
	"sort"
	"strings"
	"unicode"
)

// Static modifier tables. Parametric modifiers (arbitrary breakpoints,
// nth-* expressions) are synthesized on lookup, not stored here.
var (
	mediaModifiers = map[string]Modifier{
		"sm":            {Name: "sm", Type: ModifierMedia, CSS: "@media (width >= 640px)"},
		"md":            {Name: "md", Type: ModifierMedia, CSS: "@media (width >= 768px)"},
		"lg":            {Name: "lg", Type: ModifierMedia, CSS: "@media (width >= 1024px)"},
		"xl":            {Name: "xl", Type: ModifierMedia, CSS: "@media (width >= 1280px)"},
		"2xl":           {Name: "2xl", Type: ModifierMedia, CSS: "@media (width >= 1536px)"},
		"max-sm":        {Name: "max-sm", Type: ModifierMedia, CSS: "@media (width < 640px)"},
		"max-md":        {Name: "max-md", Type: ModifierMedia, CSS: "@media (width < 768px)"},
		"max-lg":        {Name: "max-lg", Type: ModifierMedia, CSS: "@media (width < 1024px)"},
		"max-xl":        {Name: "max-xl", Type: ModifierMedia, CSS: "@media (width < 1280px)"},
		"max-2xl":       {Name: "max-2xl", Type: ModifierMedia, CSS: "@media (width < 1536px)"},
		"portrait":      {Name: "portrait", Type: ModifierMedia, CSS: "@media (orientation: portrait)"},
		"landscape":     {Name: "landscape", Type: ModifierMedia, CSS: "@media (orientation: landscape)"},
		"motion-safe":   {Name: "motion-safe", Type: ModifierMedia, CSS: "@media (prefers-reduced-motion: no-preference)"},
		"motion-reduce": {Name: "motion-reduce", Type: ModifierMedia, CSS: "@media (prefers-reduced-motion: reduce)"},
		"print":         {Name: "print", Type: ModifierMedia, CSS: "@media print"},
		"screen":        {Name: "screen", Type: ModifierMedia, CSS: "@media screen"},
	}

	ancestorModifiers = map[string]Modifier{
		"dark":  {Name: "dark", Type: ModifierAncestor, CSS: ":root.dark"},
		"light": {Name: "light", Type: ModifierAncestor, CSS: ":root.light"},
		"rtl":   {Name: "rtl", Type: ModifierAncestor, CSS: ":root[dir=\"rtl\"]"},
		"ltr":   {Name: "ltr", Type: ModifierAncestor, CSS: ":root[dir=\"ltr\"]"},
	}

	// Interaction states carry an Order so the generator can emit them
	// in cascade-significant sequence (LVFHA); Order 0 states sort by
	// name instead.
	stateModifiers = map[string]Modifier{
		"visited":       {Name: "visited", Type: ModifierState, CSS: ":visited", Order: 1},
		"focus-within":  {Name: "focus-within", Type: ModifierState, CSS: ":focus-within", Order: 2},
		"focus":         {Name: "focus", Type: ModifierState, CSS: ":focus", Order: 3},
		"focus-visible": {Name: "focus-visible", Type: ModifierState, CSS: ":focus-visible", Order: 4},
		"hover":         {Name: "hover", Type: ModifierState, CSS: ":hover", Order: 5},
		"active":        {Name: "active", Type: ModifierState, CSS: ":active", Order: 6},
		"target":        {Name: "target", Type: ModifierState, CSS: ":target", Order: 7},

		"checked":     {Name: "checked", Type: ModifierState, CSS: ":checked"},
		"disabled":    {Name: "disabled", Type: ModifierState, CSS: ":disabled"},
		"empty":       {Name: "empty", Type: ModifierState, CSS: ":empty"},
		"enabled":     {Name: "enabled", Type: ModifierState, CSS: ":enabled"},
		"even":        {Name: "even", Type: ModifierState, CSS: ":nth-child(2n)"},
		"first-child": {Name: "first-child", Type: ModifierState, CSS: ":first-child"},
		"invalid":     {Name: "invalid", Type: ModifierState, CSS: ":invalid"},
		"last-child":  {Name: "last-child", Type: ModifierState, CSS: ":last-child"},
		"odd":         {Name: "odd", Type: ModifierState, CSS: ":nth-child(odd)"},
		"only-child":  {Name: "only-child", Type: ModifierState, CSS: ":only-child"},
		"optional":    {Name: "optional", Type: ModifierState, CSS: ":optional"},
		"read-only":   {Name: "read-only", Type: ModifierState, CSS: ":read-only"},
		"required":    {Name: "required", Type: ModifierState, CSS: ":required"},
		"valid":       {Name: "valid", Type: ModifierState, CSS: ":valid"},
	}

	pseudoElementModifiers = map[string]Modifier{
		"after":        {Name: "after", Type: ModifierPseudoElement, CSS: "::after"},
		"backdrop":     {Name: "backdrop", Type: ModifierPseudoElement, CSS: "::backdrop"},
		"before":       {Name: "before", Type: ModifierPseudoElement, CSS: "::before"},
		"first-letter": {Name: "first-letter", Type: ModifierPseudoElement, CSS: "::first-letter"},
		"first-line":   {Name: "first-line", Type: ModifierPseudoElement, CSS: "::first-line"},
		"marker":       {Name: "marker", Type: ModifierPseudoElement, CSS: "::marker"},
		"placeholder":  {Name: "placeholder", Type: ModifierPseudoElement, CSS: "::placeholder"},
		"selection":    {Name: "selection", Type: ModifierPseudoElement, CSS: "::selection"},
	}

	// parametricStates are the pseudo-classes that accept an expression
	// argument, e.g. nth-child(2n+1).
	parametricStates = map[string]bool{
		"nth-child":        true,
		"nth-last-child":   true,
		"nth-of-type":      true,
		"nth-last-of-type": true,
	}

	// cssValueFunctions are the function names an arbitrary breakpoint
	// value may start with instead of a digit.
	cssValueFunctions = []string{"calc(", "clamp(", "min(", "max(", "env("}
)

// GetModifier resolves a single class-name segment to a modifier.
// The static tables are checked in media, ancestor, state,
// pseudo-element priority order, then the parametric recognizers.
// Returns nil for anything unrecognized; the caller decides whether
// that means "error" or "stop consuming modifiers".
func GetModifier(segment string) *Modifier {
	if m, ok := mediaModifiers[segment]; ok {
		return &m
	}
	if m, ok := ancestorModifiers[segment]; ok {
		return &m
	}
	if m, ok := stateModifiers[segment]; ok {
		return &m
	}
	if m, ok := pseudoElementModifiers[segment]; ok {
		return &m
	}
	if m := parseArbitraryBreakpoint(segment); m != nil {
		return m
	}
	return parseParametricState(segment)
}

// GetAllModifierNames returns every registered modifier name, sorted,
// for typo-suggestion lookups. Parametric forms are not included.
func GetAllModifierNames() []string {
	names := make([]string, 0,
		len(mediaModifiers)+len(ancestorModifiers)+len(stateModifiers)+len(pseudoElementModifiers))
	for n := range mediaModifiers {
		names = append(names, n)
	}
	for n := range ancestorModifiers {
		names = append(names, n)
	}
	for n := range stateModifiers {
		names = append(names, n)
	}
	for n := range pseudoElementModifiers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// parseArbitraryBreakpoint recognizes min-width(<value>) and
// max-width(<value>) segments. The value must start with a digit or a
// known CSS function name and the parentheses must balance (nested
// functions are allowed).
func parseArbitraryBreakpoint(segment string) *Modifier {
	var comparator string
	var inner string
	switch {
	case strings.HasPrefix(segment, "min-width(") && strings.HasSuffix(segment, ")"):
		comparator = ">="
		inner = segment[len("min-width(") : len(segment)-1]
	case strings.HasPrefix(segment, "max-width(") && strings.HasSuffix(segment, ")"):
		comparator = "<"
		inner = segment[len("max-width(") : len(segment)-1]
	default:
		return nil
	}

	if !isValidBreakpointValue(inner) {
		return nil
	}

	return &Modifier{
		Name: segment,
		Type: ModifierMedia,
		CSS:  "@media (width " + comparator + " " + inner + ")",
	}
}

// isValidBreakpointValue accepts values starting with a digit or a
// known CSS function, with balanced parentheses throughout.
func isValidBreakpointValue(value string) bool {
	if value == "" {
		return false
	}
	if !balancedParens(value) {
		return false
	}
	if unicode.IsDigit(rune(value[0])) {
		return true
	}
	for _, fn := range cssValueFunctions {
		if strings.HasPrefix(value, fn) {
			return true
		}
	}
	return false
}

// parseParametricState recognizes nth-child(expr) style segments.
func parseParametricState(segment string) *Modifier {
	open := strings.IndexByte(segment, '(')
	if open < 0 || !strings.HasSuffix(segment, ")") {
		return nil
	}
	name := segment[:open]
	if !parametricStates[name] {
		return nil
	}
	expr := segment[open+1 : len(segment)-1]
	if strings.TrimSpace(expr) == "" || !balancedParens(expr) {
		return nil
	}
	return &Modifier{
		Name: segment,
		Type: ModifierState,
		CSS:  ":" + name + "(" + expr + ")",
	}
}

// balancedParens reports whether every '(' has a matching ')' and no
// ')' appears before its '('. Shared by the breakpoint and parametric
// state recognizers and the segment splitter.
func balancedParens(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
