package csslang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// varRefPattern matches var(--name) references, including those nested
// inside fallbacks: each var( occurrence in
// "var(--a, var(--b))" is matched separately, so both names surface.
var varRefPattern = regexp.MustCompile(`var\(\s*(--[A-Za-z0-9_-]+)`)

// ExtractVarRefs returns every custom property referenced via var()
// in a CSS value or declaration string, in order of appearance.
func ExtractVarRefs(value string) []string {
	matches := varRefPattern.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// VariableResolution is the outcome of a transitive closure over the
// variable graph.
type VariableResolution struct {
	// Resolved holds every variable name reachable from the seeds,
	// sorted; names missing from the table are included (they were
	// referenced) but carry a warning.
	Resolved []string
	// Missing holds referenced names absent from the table, sorted.
	Missing     []string
	Diagnostics []Diagnostic
}

// Has reports whether name is in the resolved set.
func (r *VariableResolution) Has(name string) bool {
	for _, n := range r.Resolved {
		if n == name {
			return true
		}
	}
	return false
}

// varResolver carries per-call traversal state. Each resolution owns
// its sets, so independent resolutions never share state.
type varResolver struct {
	table         VariableTable
	resolved      map[string]bool
	inProgress    []string
	inProgressSet map[string]bool
	missing       map[string]bool
	cycleSeen     map[string]bool
	diags         []Diagnostic
}

// ResolveVariables computes the transitive closure of variables
// referenced from the seed set, following var() references in both
// light and dark values. Missing variables warn once per name with the
// referencing chain; cycles warn but all cycle members stay in the
// resolved set, since a cyclic reference is a redundancy rather than
// something unresolvable for output purposes. Diamond dependencies
// resolve silently.
func ResolveVariables(seeds []string, table VariableTable) *VariableResolution {
	r := &varResolver{
		table:         table,
		resolved:      make(map[string]bool),
		inProgressSet: make(map[string]bool),
		missing:       make(map[string]bool),
		cycleSeen:     make(map[string]bool),
	}

	sortedSeeds := append([]string{}, seeds...)
	sort.Strings(sortedSeeds)
	for _, seed := range sortedSeeds {
		r.visit(seed, nil)
	}

	res := &VariableResolution{Diagnostics: r.diags}
	for name := range r.resolved {
		res.Resolved = append(res.Resolved, name)
	}
	sort.Strings(res.Resolved)
	for name := range r.missing {
		res.Missing = append(res.Missing, name)
	}
	sort.Strings(res.Missing)
	return res
}

func (r *varResolver) visit(name string, chain []string) {
	if r.inProgressSet[name] {
		r.reportCycle(name)
		return
	}
	if r.resolved[name] {
		return
	}
	r.resolved[name] = true

	value, ok := r.table[name]
	if !ok {
		if !r.missing[name] {
			r.missing[name] = true
			r.diags = append(r.diags, Diagnostic{
				Level:      LevelWarning,
				Phase:      PhaseGeneration,
				ClassName:  name,
				Message:    missingVarMessage(name, chain),
				Suggestion: fmt.Sprintf("define %s or force-include it via a cssprune:keep directive", name),
			})
		}
		return
	}

	r.inProgress = append(r.inProgress, name)
	r.inProgressSet[name] = true

	nextChain := append(append([]string{}, chain...), name)
	for _, ref := range ExtractVarRefs(value.Light) {
		r.visit(ref, nextChain)
	}
	for _, ref := range ExtractVarRefs(value.Dark) {
		r.visit(ref, nextChain)
	}

	r.inProgress = r.inProgress[:len(r.inProgress)-1]
	delete(r.inProgressSet, name)
}

func missingVarMessage(name string, chain []string) string {
	if len(chain) == 0 {
		return fmt.Sprintf("Variable %q is referenced but not defined", name)
	}
	return fmt.Sprintf("Variable %q is referenced via %s but not defined",
		name, strings.Join(chain, " → "))
}

// reportCycle emits one warning per distinct cycle entry point.
func (r *varResolver) reportCycle(name string) {
	start := 0
	for i, n := range r.inProgress {
		if n == name {
			start = i
			break
		}
	}
	path := append(append([]string{}, r.inProgress[start:]...), name)
	key := strings.Join(path, "→")
	if r.cycleSeen[key] {
		return
	}
	r.cycleSeen[key] = true
	r.diags = append(r.diags, Diagnostic{
		Level:     LevelWarning,
		Phase:     PhaseGeneration,
		ClassName: name,
		Message:   fmt.Sprintf("Circular dependency between variables: %s", strings.Join(path, " → ")),
	})
}
