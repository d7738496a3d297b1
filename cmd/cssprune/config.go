package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssprune"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssprune.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a
// cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSPRUNE_* prefix)
	if err := k.Load(env.Provider("CSSPRUNE_", ".", func(s string) string {
		// CSSPRUNE_BUILD_BASE -> build.base
		// CSSPRUNE_CHECK_STRICT -> check.strict
		// CSSPRUNE_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSPRUNE_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() cssprune.Config {
	config := cssprune.Config{
		BaseStylesheet:        getStringWithFallback("base", "build.base", ""),
		Definitions:           getStringWithFallback("definitions", "build.definitions", ""),
		PropertyList:          getStringWithFallback("properties", "build.properties", ""),
		Output:                getStringWithFallback("output", "build.output", "dist/site.css"),
		NoTheme:               getBoolWithFallback("no-theme", "build.no-theme", false),
		NoBase:                getBoolWithFallback("no-base", "build.no-base", false),
		NoUtilities:           getBoolWithFallback("no-utilities", "build.no-utilities", false),
		ThemeSpecificity:      getIntWithFallback("theme-specificity", "build.theme-specificity", 1),
		WarnUnmatchedElements: getBoolWithFallback("warn-unmatched-elements", "build.warn-unmatched-elements", false),
		PrintIssuedLines:      getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:       getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:             getBoolWithFallback("color", "color", false),
	}

	config.ContentGlobs = getStringsWithFallback("content", "build.content", []string{
		"web/**/*.html",
		"web/**/*.templ",
	})
	config.IncludeClasses = getStringsWithFallback("include", "build.include", nil)
	config.ForceVariables = getStringsWithFallback("force-variables", "build.force-variables", nil)

	return config
}

// getStringsWithFallback checks the flag key first, then the config
// file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
