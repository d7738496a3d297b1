package csslang

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultDefinitions returns the built-in class table: a small set of
// layout helpers plus the numeric spacing and opacity pattern
// interpreters. File-loaded definitions are merged on top and win on
// name collision.
func DefaultDefinitions() *ClassMap {
	m := NewClassMap()

	m.Set("stack", &ClassDef{Declaration: "display: flex; flex-direction: column;"})
	m.Set("row", &ClassDef{Declaration: "display: flex; flex-direction: row;"})
	m.Set("center", &ClassDef{Declaration: "align-items: center; justify-content: center;"})
	m.Set("hidden", &ClassDef{Declaration: "display: none;"})
	m.Set("sr_only", &ClassDef{
		Declaration: "position: absolute; width: 1px; height: 1px; padding: 0; margin: -1px; overflow: hidden; clip: rect(0, 0, 0, 0); white-space: nowrap; border-width: 0;",
	})

	// gap-4 → gap: 1rem (quarter-rem scale)
	m.Set("gap-scale", &ClassDef{
		Pattern:   regexp.MustCompile(`gap-(\d+)`),
		Interpret: scaleInterpreter("gap"),
	})
	m.Set("padding-scale", &ClassDef{
		Pattern:   regexp.MustCompile(`p-(\d+)`),
		Interpret: scaleInterpreter("padding"),
	})
	m.Set("margin-scale", &ClassDef{
		Pattern:   regexp.MustCompile(`m-(\d+)`),
		Interpret: scaleInterpreter("margin"),
	})
	// op-75 → opacity: 0.75
	m.Set("opacity-scale", &ClassDef{
		Pattern: regexp.MustCompile(`op-(\d{1,3})`),
		Interpret: func(name string, match []string) (string, error) {
			n, err := strconv.Atoi(match[1])
			if err != nil || n > 100 {
				return "", fmt.Errorf("opacity must be 0-100, got %q", match[1])
			}
			return fmt.Sprintf("opacity: %s;", formatScale(float64(n)/100)), nil
		},
	})

	return m
}

// scaleInterpreter maps a numeric suffix onto the quarter-rem spacing
// scale.
func scaleInterpreter(property string) InterpretFunc {
	return func(name string, match []string) (string, error) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return "", fmt.Errorf("invalid scale step %q", match[1])
		}
		if n == 0 {
			return property + ": 0;", nil
		}
		return fmt.Sprintf("%s: %srem;", property, formatScale(float64(n)*0.25)), nil
	}
}

// formatScale renders a scale value without trailing zeros (0.5, 1, 1.75).
func formatScale(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DefaultVariables returns the built-in themed palette.
func DefaultVariables() VariableTable {
	return VariableTable{
		"--color-bg":      {Light: "#ffffff", Dark: "#0f172a"},
		"--color-fg":      {Light: "#0f172a", Dark: "#f8fafc"},
		"--color-muted":   {Light: "#64748b", Dark: "#94a3b8"},
		"--color-border":  {Light: "#e2e8f0", Dark: "#334155"},
		"--color-primary": {Light: "#2563eb", Dark: "#60a5fa"},
		"--radius":        {Light: "0.375rem"},
		"--spacing":       {Light: "0.25rem"},
	}
}

// MergeDefinitions overlays later maps onto earlier ones, later wins.
func MergeDefinitions(maps ...*ClassMap) *ClassMap {
	merged := NewClassMap()
	for _, m := range maps {
		if m == nil {
			continue
		}
		for _, name := range m.Names() {
			def, _ := m.Get(name)
			merged.Set(name, def)
		}
	}
	return merged
}

// MergeVariables overlays later tables onto earlier ones, later wins.
func MergeVariables(tables ...VariableTable) VariableTable {
	merged := make(VariableTable)
	for _, t := range tables {
		for name, value := range t {
			merged[name] = value
		}
	}
	return merged
}
