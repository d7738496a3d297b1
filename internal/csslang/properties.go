package csslang

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// PropertySet is the known CSS property list used for validating the
// property segment of CSS literals. A nil *PropertySet means the list
// has not been loaded (or validation is intentionally disabled); every
// property is then accepted.
type PropertySet struct {
	names  map[string]struct{}
	sorted []string
}

// NewPropertySet builds a set from property names. Names are lowercased.
func NewPropertySet(names []string) *PropertySet {
	s := &PropertySet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, dup := s.names[n]; dup {
			continue
		}
		s.names[n] = struct{}{}
		s.sorted = append(s.sorted, n)
	}
	sort.Strings(s.sorted)
	return s
}

// Has reports whether name is a known property. Custom properties
// ("--*") are always valid. A nil set accepts everything: validation
// is skipped when the property list has not loaded.
func (s *PropertySet) Has(name string) bool {
	if s == nil {
		return true
	}
	if strings.HasPrefix(name, "--") {
		return true
	}
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// Suggest returns the known property closest to name, or "".
func (s *PropertySet) Suggest(name string) string {
	if s == nil {
		return ""
	}
	return Suggest(strings.ToLower(name), s.sorted)
}

// Len reports the number of known properties.
func (s *PropertySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// LoadPropertySet reads a property list from path: either a JSON array
// of strings or a line-oriented text file ('#' lines are comments).
// This is the one I/O-bearing entry point of the package; callers load
// once per build and thread the immutable result through every call.
func LoadPropertySet(ctx context.Context, path string) (*PropertySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read property list: %w", err)
	}

	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "[") {
		var names []string
		if err := json.Unmarshal([]byte(trimmed), &names); err != nil {
			return nil, fmt.Errorf("parse property list %s: %w", path, err)
		}
		return NewPropertySet(names), nil
	}

	var names []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return NewPropertySet(names), nil
}
