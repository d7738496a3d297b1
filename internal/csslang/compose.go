package csslang

import (
	"fmt"
	"strings"
)

// composeState carries the cycle-detection and deduplication sets for
// one class expansion. Every top-level resolution gets its own state,
// so independent class names can be resolved concurrently.
type composeState struct {
	inProgress    []string // expansion stack, for cycle path rendering
	inProgressSet map[string]bool
	resolved      map[string]bool // fully resolved across the whole expansion
}

func newComposeState() *composeState {
	return &composeState{
		inProgressSet: make(map[string]bool),
		resolved:      make(map[string]bool),
	}
}

func (st *composeState) push(name string) {
	st.inProgress = append(st.inProgress, name)
	st.inProgressSet[name] = true
}

func (st *composeState) pop() {
	last := st.inProgress[len(st.inProgress)-1]
	st.inProgress = st.inProgress[:len(st.inProgress)-1]
	delete(st.inProgressSet, last)
}

// cyclePath renders the in-progress stack from the first occurrence of
// name as "a → b → c → a".
func (st *composeState) cyclePath(name string) string {
	start := 0
	for i, n := range st.inProgress {
		if n == name {
			start = i
			break
		}
	}
	parts := append(append([]string{}, st.inProgress[start:]...), name)
	return strings.Join(parts, " → ")
}

// ResolveClassDeclaration resolves a named class definition to a flat
// declaration string. It is the top-level entry: a fresh state is
// created per call. Returns the declaration, any redundancy/empty
// warnings, and the first structural error (unknown class, cycle,
// ruleset in composes).
func ResolveClassDeclaration(name string, definitions *ClassMap) (string, []Diagnostic, *Diagnostic) {
	return resolveComposes([]string{name}, definitions, newComposeState(), name)
}

// ResolveComposes expands a composes list depth-first into one joined
// declaration string. Deduplication is first-occurrence-wins: diamond
// dependencies reached through different parents are silent, while a
// name listed twice in one list, or listed after a sibling already
// pulled it in, gets a redundancy warning. Resolution is fail-fast:
// scanning stops at the first structural error.
func ResolveComposes(names []string, definitions *ClassMap, owner string) (string, []Diagnostic, *Diagnostic) {
	return resolveComposes(names, definitions, newComposeState(), owner)
}

func resolveComposes(names []string, definitions *ClassMap, st *composeState, owner string) (string, []Diagnostic, *Diagnostic) {
	var parts []string
	var warnings []Diagnostic

	// Names already resolved when this list began. Duplicates that were
	// introduced during this same list (an earlier entry or a sibling's
	// expansion) are redundant; duplicates resolved before the list
	// began are diamond dependencies and stay silent.
	resolvedAtStart := make(map[string]bool, len(st.resolved))
	for n := range st.resolved {
		resolvedAtStart[n] = true
	}

	for _, name := range names {
		if st.inProgressSet[name] {
			return "", warnings, &Diagnostic{
				Level:     LevelError,
				Phase:     PhaseGeneration,
				ClassName: owner,
				Message:   fmt.Sprintf("Circular reference detected: %s", st.cyclePath(name)),
			}
		}

		if st.resolved[name] {
			if !resolvedAtStart[name] {
				warnings = append(warnings, Diagnostic{
					Level:     LevelWarning,
					Phase:     PhaseGeneration,
					ClassName: owner,
					Message:   fmt.Sprintf("Class %q is redundant in the composes list of %q", name, owner),
				})
			}
			continue
		}

		def, ok := definitions.Get(name)
		if !ok {
			return "", warnings, &Diagnostic{
				Level:      LevelError,
				Phase:      PhaseGeneration,
				ClassName:  owner,
				Message:    fmt.Sprintf("Unknown class %q in composes array.", name),
				Suggestion: Suggest(name, definitions.Names()),
			}
		}

		switch def.Kind() {
		case DefRuleset:
			return "", warnings, &Diagnostic{
				Level:     LevelError,
				Phase:     PhaseGeneration,
				ClassName: owner,
				Message:   fmt.Sprintf("Class %q is a ruleset and cannot be composed: rulesets have multiple selectors", name),
			}
		case DefPattern:
			return "", warnings, &Diagnostic{
				Level:     LevelError,
				Phase:     PhaseGeneration,
				ClassName: owner,
				Message:   fmt.Sprintf("Class %q is a pattern interpreter and cannot be composed", name),
			}
		}

		st.push(name)

		if len(def.Composes) > 0 {
			nested, nestedWarnings, diag := resolveComposes(def.Composes, definitions, st, owner)
			warnings = append(warnings, nestedWarnings...)
			if diag != nil {
				return "", warnings, diag
			}
			if nested != "" {
				parts = append(parts, nested)
			}
		}

		decl := strings.TrimSpace(def.Declaration)
		if decl == "" {
			if def.Kind() == DefDeclaration {
				warnings = append(warnings, Diagnostic{
					Level:     LevelWarning,
					Phase:     PhaseGeneration,
					ClassName: owner,
					Message:   fmt.Sprintf("Class %q has an empty declaration and contributes nothing", name),
				})
			}
		} else {
			parts = append(parts, terminateDeclaration(decl))
		}

		st.pop()
		st.resolved[name] = true
	}

	return strings.Join(parts, " "), warnings, nil
}

// terminateDeclaration ensures a trimmed declaration ends with ';' so
// joined fragments stay valid CSS. Composition order is load-bearing:
// later duplicate properties override earlier ones under the cascade.
func terminateDeclaration(decl string) string {
	if strings.HasSuffix(decl, ";") {
		return decl
	}
	return decl + ";"
}
