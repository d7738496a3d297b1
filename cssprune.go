// Package cssprune builds minimal stylesheets from detected class usage.
//
// cssprune scans markup for class names and element tags, resolves each
// class against a definition table, the modifier grammar, and the
// CSS-literal micro-language, and emits only the theme variables, base
// rules, and utility rules the scanned content actually needs.
//
// # Building
//
//	config := cssprune.Config{
//		ContentGlobs:   []string{"web/**/*.{html,templ}"},
//		BaseStylesheet: "web/styles/base.css",
//		Output:         "web/static/site.css",
//	}
//	result, err := cssprune.Build(context.Background(), config)
//
// # Checking
//
// Check runs the same resolution without writing output, reporting
// every diagnostic:
//
//	result, err := cssprune.Check(context.Background(), config)
//
// # CLI Tool
//
// cssprune also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssprune/cmd/cssprune@latest
package cssprune
