package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssprune.yaml config file",
	Long:  `Create a .cssprune.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssprune.yaml"); err == nil && !force {
			return fmt.Errorf(".cssprune.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssprune.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .cssprune.yaml")
		return nil
	},
}

const defaultConfig = `# cssprune configuration
# Docs: https://github.com/yacobolo/cssprune

# Shared settings
verbose: false

# Build settings
build:
  content:
    - "web/**/*.html"
    - "web/**/*.templ"
  base: web/styles/base.css
  definitions: web/styles/classes.yaml
  output: dist/site.css
  # include:                # classes resolved even when never scanned
  #   - btn
  # force-variables:
  #   - "--color-accent"
  theme-specificity: 1
  warn-unmatched-elements: false

# Check settings
check:
  strict: false
  output-format: issues    # issues | summary | full | json
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
