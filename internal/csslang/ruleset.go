package csslang

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// RawRule is one rule of a raw multi-selector ruleset: its selectors
// (comma parts, trimmed) and its declaration body without braces.
type RawRule struct {
	Selectors []string
	Body      string
}

// SplitRuleset splits raw ruleset text into its constituent rules.
// Rulesets are authored data with flat top-level rules; nested braces
// inside a body are kept verbatim.
func SplitRuleset(cssText string) []RawRule {
	lexer := css.NewLexer(parse.NewInputString(cssText))

	var rules []RawRule
	var selBuf strings.Builder
	var bodyBuf strings.Builder
	var selectors []string
	inBody := false
	depth := 0

	flushSelector := func() {
		if sel := strings.TrimSpace(selBuf.String()); sel != "" {
			selectors = append(selectors, sel)
		}
		selBuf.Reset()
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		if !inBody {
			switch tt {
			case css.LeftBraceToken:
				flushSelector()
				inBody = true
				depth = 1
			case css.CommaToken:
				flushSelector()
			case css.CommentToken:
				// dropped
			default:
				selBuf.Write(text)
			}
			continue
		}

		switch tt {
		case css.LeftBraceToken:
			depth++
			bodyBuf.Write(text)
		case css.RightBraceToken:
			depth--
			if depth == 0 {
				rules = append(rules, RawRule{
					Selectors: selectors,
					Body:      strings.TrimSpace(bodyBuf.String()),
				})
				selectors = nil
				bodyBuf.Reset()
				inBody = false
			} else {
				bodyBuf.Write(text)
			}
		default:
			bodyBuf.Write(text)
		}
	}

	return rules
}
