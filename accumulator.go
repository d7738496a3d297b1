package cssprune

import (
	"sort"
	"sync"
)

// MergedUsage is the project-wide view across all scanned files.
type MergedUsage struct {
	Classes       map[string][]FileLocation
	Elements      map[string]bool
	KeepClasses   []string
	KeepVariables []string
}

// ClassNames returns every detected class name, sorted.
func (m *MergedUsage) ClassNames() []string {
	names := make([]string, 0, len(m.Classes))
	for name := range m.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UsageAccumulator stores per-file scan results and serves a merged
// view. Per-file replacement keeps incremental rescans cheap: a watch
// loop re-scans only the changed file and the merge is rebuilt lazily.
// Safe for concurrent use.
type UsageAccumulator struct {
	mu     sync.RWMutex
	files  map[string]FileUsage
	merged *MergedUsage // nil when dirty
}

// NewUsageAccumulator returns an empty accumulator.
func NewUsageAccumulator() *UsageAccumulator {
	return &UsageAccumulator{files: make(map[string]FileUsage)}
}

// Update replaces the stored usage for usage.Path.
func (a *UsageAccumulator) Update(usage FileUsage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files[usage.Path] = usage
	a.merged = nil
}

// Remove drops a deleted file's usage.
func (a *UsageAccumulator) Remove(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.files[path]; !ok {
		return
	}
	delete(a.files, path)
	a.merged = nil
}

// Len reports the number of tracked files.
func (a *UsageAccumulator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.files)
}

// Merged returns the merged view, rebuilding it only when a file
// changed since the last call. Callers must not mutate the result.
func (a *UsageAccumulator) Merged() *MergedUsage {
	a.mu.RLock()
	if a.merged != nil {
		defer a.mu.RUnlock()
		return a.merged
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.merged != nil {
		return a.merged
	}

	merged := &MergedUsage{
		Classes:  make(map[string][]FileLocation),
		Elements: make(map[string]bool),
	}

	// Deterministic merge order keeps location lists stable across runs.
	paths := make([]string, 0, len(a.files))
	for path := range a.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	keepClasses := make(map[string]bool)
	keepVariables := make(map[string]bool)
	for _, path := range paths {
		usage := a.files[path]
		for name, locs := range usage.Classes {
			merged.Classes[name] = append(merged.Classes[name], locs...)
		}
		for el := range usage.Elements {
			merged.Elements[el] = true
		}
		for _, name := range usage.KeepClasses {
			keepClasses[name] = true
		}
		for _, name := range usage.KeepVariables {
			keepVariables[name] = true
		}
	}
	merged.KeepClasses = sortedKeys(keepClasses)
	merged.KeepVariables = sortedKeys(keepVariables)

	a.merged = merged
	return merged
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
