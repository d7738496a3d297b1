package cssprune

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileLocation tracks where a class reference was found.
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column (exact start of class name)
	Text   string // Full line content for source display
}

// FileUsage is everything extracted from one content file.
type FileUsage struct {
	Path string
	// Classes maps each detected class name to every location it
	// appears at. Extraction over-captures on purpose: unknown names
	// are filtered later during resolution.
	Classes map[string][]FileLocation
	// Elements holds lowercased element tag names seen in markup.
	Elements map[string]bool
	// KeepClasses and KeepVariables come from cssprune:keep directives.
	KeepClasses   []string
	KeepVariables []string
}

// ScanStats tracks file scanning statistics.
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

var (
	// Class attribute patterns, most specific first.
	classAttrPatterns = []*regexp.Regexp{
		regexp.MustCompile(`class\s*=\s*"([^"]*)"`),
		regexp.MustCompile(`class\s*=\s*'([^']*)'`),
		regexp.MustCompile(`className\s*=\s*"([^"]*)"`),
		regexp.MustCompile(`class=\{\s*"([^"]*)"`),
		regexp.MustCompile(`templ\.Classes\(\s*"([^"]*)"`),
	}

	// elementTagPattern matches opening markup tags. Custom elements
	// (with '-') count; closing tags and fragments do not.
	elementTagPattern = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)`)

	// keepDirectivePattern matches force-include directives in comments:
	//   <!-- cssprune:keep btn --color-accent -->
	//   // cssprune:keep hover:opacity:50%
	keepDirectivePattern = regexp.MustCompile(`cssprune:keep\s+([^*>\r\n]+)`)

	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isGeneratedFile checks for generated files whose class usage
// duplicates their source (templ output).
func isGeneratedFile(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile applies two-layer filtering: a fast suffix check for
// generated files, then a gitignore check for relative paths (absolute
// paths are outside the project and never gitignore-filtered).
func shouldSkipFile(path string) bool {
	if isGeneratedFile(path) {
		return true
	}
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}
	return false
}

// ScanFiles scans every file matching the glob patterns. A file that
// fails to read is skipped rather than failing the whole scan.
func ScanFiles(globPatterns []string) ([]FileUsage, ScanStats, error) {
	files, stats, err := expandGlobPatterns(globPatterns)
	if err != nil {
		return nil, stats, err
	}

	var usages []FileUsage
	for _, file := range files {
		usage, err := scanFile(file)
		if err != nil {
			continue
		}
		usages = append(usages, usage)
	}
	return usages, stats, nil
}

// expandGlobPatterns expands globs to deduplicated file paths and
// tracks discovery statistics.
func expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
			} else {
				allFiles = append(allFiles, match)
				seen[match] = true
				stats.FilesScanned++
			}
		}
	}

	return allFiles, stats, nil
}

// scanFile scans a single file line by line.
func scanFile(path string) (FileUsage, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileUsage{}, err
	}
	defer file.Close()

	usage := newFileUsage(path)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		scanLine(&usage, scanner.Text(), lineNum)
	}
	if err := scanner.Err(); err != nil {
		return FileUsage{}, err
	}
	return usage, nil
}

// ScanContent scans in-memory content, for tests and editor buffers.
func ScanContent(path, content string) FileUsage {
	usage := newFileUsage(path)
	for i, line := range strings.Split(content, "\n") {
		scanLine(&usage, line, i+1)
	}
	return usage
}

func newFileUsage(path string) FileUsage {
	return FileUsage{
		Path:     path,
		Classes:  make(map[string][]FileLocation),
		Elements: make(map[string]bool),
	}
}

func scanLine(usage *FileUsage, line string, lineNum int) {
	if m := keepDirectivePattern.FindStringSubmatch(line); m != nil {
		for _, token := range strings.Fields(m[1]) {
			// "--" left over from an HTML comment closer is not a name
			if strings.Trim(token, "-") == "" {
				continue
			}
			if strings.HasPrefix(token, "--") {
				usage.KeepVariables = append(usage.KeepVariables, token)
			} else {
				usage.KeepClasses = append(usage.KeepClasses, token)
			}
		}
		return
	}

	trimmed := strings.TrimSpace(line)

	for _, pattern := range classAttrPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(line, -1) {
			value := line[match[2]:match[3]]
			for _, name := range strings.Fields(value) {
				usage.Classes[name] = append(usage.Classes[name], FileLocation{
					File:   usage.Path,
					Line:   lineNum,
					Column: findClassColumn(line, match[2], name),
					Text:   trimmed,
				})
			}
		}
	}

	for _, match := range elementTagPattern.FindAllStringSubmatch(line, -1) {
		usage.Elements[strings.ToLower(match[1])] = true
	}
}

// findClassColumn locates the 1-based column of a class name within
// the attribute value starting at valueStart.
func findClassColumn(line string, valueStart int, name string) int {
	idx := strings.Index(line[valueStart:], name)
	if idx < 0 {
		return valueStart + 1
	}
	return valueStart + idx + 1
}

// GetRelativePath returns a path relative to the working directory,
// falling back to the input when that fails.
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}
	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
