// Package csslang implements the utility-class resolution core: the
// modifier registry, the CSS-literal micro-language, class composition,
// the variable dependency graph, and the base-stylesheet rule index.
package csslang

import "regexp"

// ModifierType classifies how a modifier affects a generated rule.
type ModifierType int

// Modifier kinds, in the order they must appear in a class name.
const (
	ModifierMedia ModifierType = iota
	ModifierAncestor
	ModifierState
	ModifierPseudoElement
)

// Modifier is one entry in the modifier registry.
type Modifier struct {
	Name string
	Type ModifierType
	// CSS is the wrapper prelude for media modifiers
	// ("@media (width >= 768px)"), the ancestor selector for ancestor
	// modifiers (":root.dark"), or the selector suffix for state and
	// pseudo-element modifiers (":hover", "::before").
	CSS string
	// Order ranks interaction states for cascade-correct output.
	// Non-interactive states have Order 0.
	Order int
}

// Level is the severity of a diagnostic.
type Level string

// Diagnostic severities.
const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Phase identifies which pipeline stage produced a diagnostic.
type Phase string

// Pipeline phases.
const (
	PhaseExtraction Phase = "extraction"
	PhaseGeneration Phase = "generation"
)

// Location is a 1-based source position.
type Location struct {
	File   string
	Line   int
	Column int
}

// Diagnostic reports a problem scoped to one class name or variable.
// Diagnostics are collected and returned, never used as control flow.
type Diagnostic struct {
	Level      Level
	Message    string
	ClassName  string
	Suggestion string
	Phase      Phase
	Locations  []Location
}

// ParsedLiteral is the structured form of a CSS-literal class name.
// Immutable after construction.
type ParsedLiteral struct {
	ClassName     string
	Media         *Modifier
	Ancestor      *Modifier
	States        []Modifier
	PseudoElement *Modifier
	Property      string
	Value         string
}

// Rule is one generated CSS rule plus the wrappers the caller must
// apply around it.
type Rule struct {
	Selector        string
	Declarations    string
	MediaWrapper    string
	AncestorWrapper string
}

// CSS renders the rule with its ancestor prefix and media wrapper applied.
func (r Rule) CSS() string {
	sel := r.Selector
	if r.AncestorWrapper != "" {
		sel = r.AncestorWrapper + " " + sel
	}
	body := sel + " { " + r.Declarations + " }"
	if r.MediaWrapper != "" {
		return r.MediaWrapper + " {\n  " + body + "\n}"
	}
	return body
}

// DefKind discriminates the class definition union.
type DefKind int

// Class definition kinds.
const (
	DefDeclaration DefKind = iota
	DefComposite
	DefRuleset
	DefPattern
)

// InterpretFunc resolves a pattern-based class name to a declaration
// string. match holds the pattern's submatches, match[0] the full name.
type InterpretFunc func(name string, match []string) (string, error)

// ClassDef is one entry in the class definition table. Exactly one of
// the union arms is populated; Composite definitions may additionally
// carry their own Declaration.
type ClassDef struct {
	Declaration string
	Composes    []string
	Ruleset     string
	Pattern     *regexp.Regexp
	Interpret   InterpretFunc
}

// Kind reports which arm of the union this definition is.
func (d *ClassDef) Kind() DefKind {
	switch {
	case d.Pattern != nil:
		return DefPattern
	case d.Ruleset != "":
		return DefRuleset
	case len(d.Composes) > 0:
		return DefComposite
	default:
		return DefDeclaration
	}
}

// ClassMap is a name→definition table. Insertion order is preserved:
// it is the output-ordering fallback and the pattern dispatch order.
type ClassMap struct {
	defs  map[string]*ClassDef
	order []string
}

// NewClassMap returns an empty definition table.
func NewClassMap() *ClassMap {
	return &ClassMap{defs: make(map[string]*ClassDef)}
}

// Set adds or replaces a definition.
func (m *ClassMap) Set(name string, def *ClassDef) {
	if _, exists := m.defs[name]; !exists {
		m.order = append(m.order, name)
	}
	m.defs[name] = def
}

// Get looks up a definition by exact name.
func (m *ClassMap) Get(name string) (*ClassDef, bool) {
	d, ok := m.defs[name]
	return d, ok
}

// Names returns all definition names in insertion order.
func (m *ClassMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len reports the number of definitions.
func (m *ClassMap) Len() int { return len(m.defs) }

// MatchPattern scans pattern definitions in insertion order and returns
// the first whose pattern matches the whole name, with its submatches.
func (m *ClassMap) MatchPattern(name string) (*ClassDef, []string) {
	for _, key := range m.order {
		def := m.defs[key]
		if def.Pattern == nil {
			continue
		}
		match := def.Pattern.FindStringSubmatch(name)
		if match != nil && match[0] == name {
			return def, match
		}
	}
	return nil, nil
}

// VarValue holds the light and dark theme values of a custom property.
// Dark may be empty when the variable is not themed.
type VarValue struct {
	Light string
	Dark  string
}

// VariableTable maps custom property names ("--name") to theme values.
type VariableTable map[string]VarValue
