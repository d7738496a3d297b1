package csslang

import (
	"fmt"
	"sort"
	"strings"
)

// ResolveInput is everything the resolver consumes for one run.
type ResolveInput struct {
	// Explicit names were requested directly (configuration, keep
	// directives): failures on them are errors.
	Explicit []string
	// Implicit names were discovered by markup extraction: unknown names
	// are silently skipped (extraction over-captures by design of the
	// scanner, not of the resolver) and failures downgrade to warnings.
	Implicit []string

	// Elements and Classes are the detected usage sets for base
	// stylesheet matching.
	Elements map[string]bool
	Classes  map[string]bool

	Definitions     *ClassMap
	Variables       VariableTable
	KnownProperties *PropertySet
	// BaseIndex may be nil when no base stylesheet is configured.
	BaseIndex *StyleRuleIndex
	// ForcedVariables are always seeded into the variable closure.
	ForcedVariables []string
}

// Options controls output assembly.
type Options struct {
	IncludeTheme     bool
	IncludeBase      bool
	IncludeUtilities bool
	// ThemeSpecificity repeats the :root selector to outrank later
	// sheets; values below 1 behave as 1.
	ThemeSpecificity int
	// WarnUnmatchedElements reports detected elements with no rule in
	// the base stylesheet.
	WarnUnmatchedElements bool
}

// ResolvedClass is one successfully resolved class name and its rules.
type ResolvedClass struct {
	Name       string
	Rules      []Rule
	Precedence int
}

// ResolveResult is the full outcome of a resolver run. Per-name
// resolution is independent: one failing class never blocks the rest.
type ResolveResult struct {
	Classes     []ResolvedClass
	Unknown     []string
	Variables   *VariableResolution
	ThemeCSS    string
	BaseCSS     string
	UtilityCSS  string
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r *ResolveResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// ResolveCSS resolves every requested class name and assembles the
// theme, base, and utility outputs. Dispatch per name: a registered
// definition wins, then modified-class interpretation, then the
// CSS-literal interpreter; anything else is unknown.
func ResolveCSS(input ResolveInput, opts Options) *ResolveResult {
	res := &ResolveResult{}
	defs := input.Definitions
	if defs == nil {
		defs = NewClassMap()
	}

	seen := make(map[string]bool)
	resolve := func(name string, explicit bool) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true

		rc, warnings, diag := resolveOne(name, defs, input.KnownProperties)
		res.Diagnostics = append(res.Diagnostics, warnings...)
		if diag != nil {
			if !explicit && diag.Level == LevelError {
				diag.Level = LevelWarning
			}
			res.Diagnostics = append(res.Diagnostics, *diag)
			return
		}
		if rc == nil {
			res.Unknown = append(res.Unknown, name)
			if explicit {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Level:      LevelError,
					Phase:      PhaseGeneration,
					ClassName:  name,
					Message:    fmt.Sprintf("Unknown class %q", name),
					Suggestion: Suggest(name, defs.Names()),
				})
			}
			return
		}
		res.Classes = append(res.Classes, *rc)
	}

	for _, name := range input.Explicit {
		resolve(name, true)
	}
	for _, name := range input.Implicit {
		resolve(name, false)
	}

	// Interaction-state precedence first, then name: hover rules must
	// come after rest-state rules regardless of request order.
	sort.SliceStable(res.Classes, func(i, j int) bool {
		if res.Classes[i].Precedence != res.Classes[j].Precedence {
			return res.Classes[i].Precedence < res.Classes[j].Precedence
		}
		return res.Classes[i].Name < res.Classes[j].Name
	})
	sort.Strings(res.Unknown)

	var basePositions []int
	if input.BaseIndex != nil {
		basePositions = input.BaseIndex.MatchingRules(input.Elements, input.Classes)
		if opts.WarnUnmatchedElements {
			res.Diagnostics = append(res.Diagnostics, unmatchedElementWarnings(input)...)
		}
	}

	seeds := collectVariableSeeds(input, res.Classes, basePositions)
	res.Variables = ResolveVariables(seeds, input.Variables)
	res.Diagnostics = append(res.Diagnostics, res.Variables.Diagnostics...)

	if opts.IncludeTheme {
		res.ThemeCSS = GenerateThemeCSS(res.Variables, input.Variables, opts.ThemeSpecificity)
	}
	if opts.IncludeBase && input.BaseIndex != nil {
		res.BaseCSS = input.BaseIndex.GenerateBaseCSS(basePositions)
	}
	if opts.IncludeUtilities {
		res.UtilityCSS = GenerateUtilityCSS(res.Classes)
	}

	return res
}

// resolveOne dispatches a single class name. Returns (nil, nil, nil)
// when the name matches nothing at all.
func resolveOne(name string, defs *ClassMap, props *PropertySet) (*ResolvedClass, []Diagnostic, *Diagnostic) {
	if def, ok := defs.Get(name); ok {
		return resolveDefinition(name, def, nil, defs)
	}
	if def, match := defs.MatchPattern(name); def != nil {
		return resolveDefinition(name, def, match, defs)
	}

	if mc, warnings, diag := InterpretModifiedClass(name, defs, props); diag != nil {
		return nil, warnings, diag
	} else if mc != nil {
		return &ResolvedClass{Name: name, Rules: mc.Rules, Precedence: mc.Precedence}, warnings, nil
	}

	if IsPossibleCSSLiteral(name) {
		parsed, warnings, diag := ParseCSSLiteral(name, props)
		if diag != nil {
			return nil, warnings, diag
		}
		return &ResolvedClass{
			Name:       name,
			Rules:      []Rule{InterpretCSSLiteral(parsed)},
			Precedence: StatePrecedence(parsed.States),
		}, warnings, nil
	}

	return nil, nil, nil
}

// resolveDefinition resolves a registered class definition by kind.
func resolveDefinition(name string, def *ClassDef, patternMatch []string, defs *ClassMap) (*ResolvedClass, []Diagnostic, *Diagnostic) {
	switch def.Kind() {
	case DefRuleset:
		var rules []Rule
		for _, raw := range SplitRuleset(def.Ruleset) {
			rules = append(rules, Rule{
				Selector:     strings.Join(raw.Selectors, ", "),
				Declarations: raw.Body,
			})
		}
		return &ResolvedClass{Name: name, Rules: rules}, nil, nil

	case DefPattern:
		decl, err := def.Interpret(name, patternMatch)
		if err != nil {
			return nil, nil, &Diagnostic{
				Level:     LevelError,
				Phase:     PhaseGeneration,
				ClassName: name,
				Message:   fmt.Sprintf("Interpreting class %q: %v", name, err),
			}
		}
		return &ResolvedClass{Name: name, Rules: []Rule{{
			Selector:     "." + EscapeClassName(name),
			Declarations: decl,
		}}}, nil, nil

	default:
		decl, warnings, diag := ResolveClassDeclaration(name, defs)
		if diag != nil {
			return nil, warnings, diag
		}
		return &ResolvedClass{Name: name, Rules: []Rule{{
			Selector:     "." + EscapeClassName(name),
			Declarations: decl,
		}}}, warnings, nil
	}
}

// collectVariableSeeds gathers every var() reference visible in the
// output: matched base rules, resolved utility declarations, and any
// force-included names.
func collectVariableSeeds(input ResolveInput, classes []ResolvedClass, basePositions []int) []string {
	seedSet := make(map[string]bool)
	if input.BaseIndex != nil {
		for _, pos := range basePositions {
			for _, ref := range input.BaseIndex.Rules[pos].Variables {
				seedSet[ref] = true
			}
		}
	}
	for _, rc := range classes {
		for _, rule := range rc.Rules {
			for _, ref := range ExtractVarRefs(rule.Declarations) {
				seedSet[ref] = true
			}
		}
	}
	for _, name := range input.ForcedVariables {
		seedSet[name] = true
	}

	seeds := make([]string, 0, len(seedSet))
	for name := range seedSet {
		seeds = append(seeds, name)
	}
	sort.Strings(seeds)
	return seeds
}

func unmatchedElementWarnings(input ResolveInput) []Diagnostic {
	var names []string
	for el := range input.Elements {
		if len(input.BaseIndex.ByElement[el]) == 0 {
			names = append(names, el)
		}
	}
	sort.Strings(names)

	diags := make([]Diagnostic, 0, len(names))
	for _, el := range names {
		diags = append(diags, Diagnostic{
			Level:     LevelWarning,
			Phase:     PhaseGeneration,
			ClassName: el,
			Message:   fmt.Sprintf("Element %q appears in markup but has no rule in the base stylesheet", el),
		})
	}
	return diags
}

// GenerateThemeCSS emits the :root light block and, when any resolved
// variable carries a dark value, the :root.dark block. Variables are
// alphabetical; missing names are excluded (they were already warned
// about during resolution).
func GenerateThemeCSS(resolution *VariableResolution, table VariableTable, specificity int) string {
	if specificity < 1 {
		specificity = 1
	}
	rootSel := strings.Repeat(":root", specificity)

	var light, dark []string
	for _, name := range resolution.Resolved {
		value, ok := table[name]
		if !ok {
			continue
		}
		light = append(light, fmt.Sprintf("  %s: %s;", name, value.Light))
		if value.Dark != "" {
			dark = append(dark, fmt.Sprintf("  %s: %s;", name, value.Dark))
		}
	}
	if len(light) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(rootSel + " {\n" + strings.Join(light, "\n") + "\n}\n")
	if len(dark) > 0 {
		b.WriteString(rootSel + ".dark {\n" + strings.Join(dark, "\n") + "\n}\n")
	}
	return b.String()
}

// GenerateUtilityCSS renders resolved classes in precedence order, one
// rule per line, media-wrapped rules as their own blocks.
func GenerateUtilityCSS(classes []ResolvedClass) string {
	var b strings.Builder
	for _, rc := range classes {
		for _, rule := range rc.Rules {
			b.WriteString(rule.CSS())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Section header comments of the unified output.
const (
	themeHeader   = "/* Theme Variables */"
	baseHeader    = "/* Base Styles */"
	utilityHeader = "/* Utility Classes */"
)

// GenerateUnifiedCSS assembles the final stylesheet in fixed section
// order (theme, base, utilities), omitting empty sections entirely.
func GenerateUnifiedCSS(res *ResolveResult) string {
	var sections []string
	if res.ThemeCSS != "" {
		sections = append(sections, themeHeader+"\n"+res.ThemeCSS)
	}
	if res.BaseCSS != "" {
		sections = append(sections, baseHeader+"\n"+res.BaseCSS)
	}
	if res.UtilityCSS != "" {
		sections = append(sections, utilityHeader+"\n"+res.UtilityCSS)
	}
	return strings.Join(sections, "\n")
}
