package csslang

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// CoreReason explains why a rule is always included regardless of
// detected usage.
type CoreReason string

// Core-rule reasons.
const (
	CoreUniversal  CoreReason = "universal"
	CoreRoot       CoreReason = "root"
	CoreBody       CoreReason = "body"
	CoreMediaQuery CoreReason = "media_query"
	CoreFontFace   CoreReason = "font_face"
)

// IndexedRule is one rule of the base stylesheet with its selector
// metadata extracted.
type IndexedRule struct {
	Position   int
	Selector   string
	Elements   []string
	Classes    []string
	Variables  []string
	Body       string
	Wrappers   []string // enclosing at-rule preludes, outermost first
	IsCore     bool
	CoreReason CoreReason
}

// StyleRuleIndex is the parsed, indexed form of a base stylesheet.
// Built once per content hash, immutable, consumed many times.
type StyleRuleIndex struct {
	ContentHash string
	Rules       []IndexedRule
	ByElement   map[string][]int
	ByClass     map[string][]int
}

// HashContent returns the sha256 hex digest used as a stylesheet cache
// key. The parser itself is pure; caching is the caller's concern.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ParseStyleCSS parses a base stylesheet into an indexed rule sequence.
// Rules nested in @media/@supports/@container/@layer blocks are indexed
// with their wrappers; @font-face blocks are core rules; @keyframes
// blocks are kept opaque (variables extracted, no selector metadata).
func ParseStyleCSS(cssText, contentHash string) *StyleRuleIndex {
	p := &sheetParser{lexer: css.NewLexer(parse.NewInputString(cssText))}
	p.parseRules(nil, false)

	index := &StyleRuleIndex{
		ContentHash: contentHash,
		Rules:       p.rules,
		ByElement:   make(map[string][]int),
		ByClass:     make(map[string][]int),
	}
	for i, rule := range index.Rules {
		for _, el := range rule.Elements {
			index.ByElement[el] = append(index.ByElement[el], i)
		}
		for _, cl := range rule.Classes {
			index.ByClass[cl] = append(index.ByClass[cl], i)
		}
	}
	return index
}

type sheetParser struct {
	lexer *css.Lexer
	rules []IndexedRule
}

// parseRules consumes rules until EOF or, when insideBlock is set, the
// brace closing the current at-rule block.
func (p *sheetParser) parseRules(wrappers []string, insideBlock bool) {
	var prelude strings.Builder

	for {
		tt, text := p.lexer.Next()
		if tt == css.ErrorToken {
			return
		}

		switch tt {
		case css.RightBraceToken:
			if insideBlock {
				return
			}
		case css.CommentToken:
			// dropped
		case css.AtKeywordToken:
			p.parseAtRule(string(text), wrappers)
		case css.LeftBraceToken:
			selector := strings.TrimSpace(prelude.String())
			prelude.Reset()
			body := p.readBody()
			p.addStyleRule(selector, body, wrappers)
		case css.SemicolonToken:
			prelude.Reset()
		default:
			prelude.Write(text)
		}
	}
}

// parseAtRule handles an at-rule whose @keyword token was just read.
func (p *sheetParser) parseAtRule(keyword string, wrappers []string) {
	var prelude strings.Builder
	prelude.WriteString(keyword)

	for {
		tt, text := p.lexer.Next()
		if tt == css.ErrorToken || tt == css.SemicolonToken {
			// statement at-rule (@import, @layer a, b;): nothing to index
			return
		}
		if tt == css.LeftBraceToken {
			break
		}
		prelude.Write(text)
	}

	preludeText := strings.TrimSpace(prelude.String())

	switch keyword {
	case "@media", "@supports", "@container", "@layer":
		p.parseRules(append(wrappers, preludeText), true)
	case "@font-face":
		body := p.readBody()
		p.rules = append(p.rules, IndexedRule{
			Position:   len(p.rules),
			Selector:   "@font-face",
			Variables:  ExtractVarRefs(body),
			Body:       body,
			Wrappers:   append([]string{}, wrappers...),
			IsCore:     true,
			CoreReason: CoreFontFace,
		})
	default:
		// @keyframes and anything else with a block: keep opaque
		body := p.readBody()
		p.rules = append(p.rules, IndexedRule{
			Position:  len(p.rules),
			Selector:  preludeText,
			Variables: ExtractVarRefs(body),
			Body:      body,
			Wrappers:  append([]string{}, wrappers...),
		})
	}
}

// readBody consumes tokens until the brace closing the current block,
// keeping nested braces verbatim.
func (p *sheetParser) readBody() string {
	var body strings.Builder
	depth := 1
	for {
		tt, text := p.lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		switch tt {
		case css.LeftBraceToken:
			depth++
			body.Write(text)
		case css.RightBraceToken:
			depth--
			if depth == 0 {
				return strings.TrimSpace(body.String())
			}
			body.Write(text)
		default:
			body.Write(text)
		}
	}
	return strings.TrimSpace(body.String())
}

func (p *sheetParser) addStyleRule(selector, body string, wrappers []string) {
	if selector == "" {
		return
	}

	elements, classes := AnalyzeSelector(selector)
	rule := IndexedRule{
		Position:  len(p.rules),
		Selector:  selector,
		Elements:  elements,
		Classes:   classes,
		Variables: ExtractVarRefs(body),
		Body:      body,
		Wrappers:  append([]string{}, wrappers...),
	}
	rule.IsCore, rule.CoreReason = coreStatus(selector, wrappers)
	p.rules = append(p.rules, rule)
}

// coreStatus flags rules that are always included: the universal
// selector, :root, body, and anything inside a prefers-reduced-motion
// media block.
func coreStatus(selector string, wrappers []string) (bool, CoreReason) {
	for _, part := range strings.Split(selector, ",") {
		switch strings.TrimSpace(part) {
		case "*":
			return true, CoreUniversal
		case ":root":
			return true, CoreRoot
		case "body":
			return true, CoreBody
		}
	}
	for _, w := range wrappers {
		if strings.HasPrefix(w, "@media") && strings.Contains(w, "prefers-reduced-motion") {
			return true, CoreMediaQuery
		}
	}
	return false, ""
}

// AnalyzeSelector extracts element type selectors and class selectors
// from a selector, descending into :where()/:is()/:not()/:has() at any
// nesting depth, skipping attribute selectors (their value strings must
// never be read as selector text), and never reporting pseudo-classes
// or pseudo-elements as element names.
func AnalyzeSelector(selector string) (elements, classes []string) {
	seenElement := make(map[string]bool)
	seenClass := make(map[string]bool)

	i := 0
	for i < len(selector) {
		c := selector[i]
		switch {
		case c == '[':
			i = skipAttribute(selector, i)
		case c == '.':
			name, next := readIdent(selector, i+1)
			if name != "" && !seenClass[name] {
				seenClass[name] = true
				classes = append(classes, name)
			}
			i = next
		case c == '#':
			_, next := readIdent(selector, i+1)
			i = next
		case c == ':':
			j := i + 1
			for j < len(selector) && selector[j] == ':' {
				j++
			}
			name, next := readIdent(selector, j)
			i = next
			if i < len(selector) && selector[i] == '(' {
				switch name {
				case "not", "is", "where", "has":
					// descend: keep scanning inside the parentheses
					i++
				default:
					i = skipParens(selector, i)
				}
			}
		case isIdentStartByte(c):
			name, next := readIdent(selector, i)
			lower := strings.ToLower(name)
			if !seenElement[lower] {
				seenElement[lower] = true
				elements = append(elements, lower)
			}
			i = next
		default:
			i++
		}
	}
	return elements, classes
}

func isIdentStartByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func readIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[start:i], i
}

// skipAttribute advances past an attribute selector, honoring quoted
// value strings so a ']' inside them does not end the scan.
func skipAttribute(s string, i int) int {
	i++ // consume '['
	var quote byte
	for i < len(s) {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
		} else if c == '"' || c == '\'' {
			quote = c
		} else if c == ']' {
			return i + 1
		}
		i++
	}
	return i
}

// skipParens advances past a balanced parenthesized span starting at
// the '(' at position i.
func skipParens(s string, i int) int {
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}

// MatchingRules returns the sorted positions of the minimal rule
// subset: core rules plus every rule whose element or class sets
// intersect the detected usage.
func (idx *StyleRuleIndex) MatchingRules(elements, classes map[string]bool) []int {
	include := make(map[int]bool)
	for i, rule := range idx.Rules {
		if rule.IsCore {
			include[i] = true
		}
	}
	for el := range elements {
		for _, pos := range idx.ByElement[el] {
			include[pos] = true
		}
	}
	for cl := range classes {
		for _, pos := range idx.ByClass[cl] {
			include[pos] = true
		}
	}

	positions := make([]int, 0, len(include))
	for pos := range include {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// GenerateBaseCSS emits the matched rules in original stylesheet order,
// re-opening at-rule wrappers as needed. Positions are tracked rather
// than re-sorting selectors precisely so the cascade order survives.
func (idx *StyleRuleIndex) GenerateBaseCSS(positions []int) string {
	var b strings.Builder
	var open []string

	closeTo := func(n int) {
		for len(open) > n {
			open = open[:len(open)-1]
			b.WriteString(strings.Repeat("  ", len(open)) + "}\n")
		}
	}

	for _, pos := range positions {
		if pos < 0 || pos >= len(idx.Rules) {
			continue
		}
		rule := idx.Rules[pos]

		common := 0
		for common < len(open) && common < len(rule.Wrappers) && open[common] == rule.Wrappers[common] {
			common++
		}
		closeTo(common)
		for _, w := range rule.Wrappers[common:] {
			b.WriteString(strings.Repeat("  ", len(open)) + w + " {\n")
			open = append(open, w)
		}

		indent := strings.Repeat("  ", len(open))
		b.WriteString(indent + rule.Selector + " { " + collapseWhitespace(rule.Body) + " }\n")
	}
	closeTo(0)

	return b.String()
}

// collapseWhitespace normalizes runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
