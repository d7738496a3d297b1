package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
verbose: true

build:
  content:
    - "custom/**/*.html"
  base: custom/base.css
  definitions: custom/classes.yaml
  output: custom/out.css
  theme-specificity: 2

check:
  strict: true
  output-format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"custom/**/*.html"}, k.Strings("build.content"))
	assert.Equal(t, "custom/base.css", k.String("build.base"))
	assert.Equal(t, "custom/classes.yaml", k.String("build.definitions"))
	assert.Equal(t, "custom/out.css", k.String("build.output"))
	assert.Equal(t, 2, k.Int("build.theme-specificity"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, "json", k.String("check.output-format"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Pointing at a non-existent config must not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssprune.yaml"))

	config := buildConfig()
	assert.Equal(t, []string{"web/**/*.html", "web/**/*.templ"}, config.ContentGlobs)
	assert.Equal(t, "dist/site.css", config.Output)
	assert.Empty(t, config.BaseStylesheet)
	assert.Equal(t, 1, config.ThemeSpecificity)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
build:
  base: from-file.css
check:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CSSPRUNE_BUILD_BASE", "from-env.css")
	t.Setenv("CSSPRUNE_CHECK_STRICT", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env.css", k.String("build.base"))
	assert.True(t, k.Bool("check.strict"))
}

func TestBuildConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
build:
  content:
    - "src/**/*.templ"
  base: src/base.css
  output: gen/site.css
  include:
    - btn
    - stack
  force-variables:
    - "--color-accent"
  no-theme: true
  warn-unmatched-elements: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig()
	assert.Equal(t, []string{"src/**/*.templ"}, config.ContentGlobs)
	assert.Equal(t, "src/base.css", config.BaseStylesheet)
	assert.Equal(t, "gen/site.css", config.Output)
	assert.Equal(t, []string{"btn", "stack"}, config.IncludeClasses)
	assert.Equal(t, []string{"--color-accent"}, config.ForceVariables)
	assert.True(t, config.NoTheme)
	assert.False(t, config.NoBase)
	assert.True(t, config.WarnUnmatchedElements)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssprune.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "build:")
	assert.Contains(t, string(data), "check:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".cssprune.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".cssprune.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssprune.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "build:")
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, []string{"a"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
	assert.Nil(t, getStringsWithFallback("flag-key", "config.key", nil))
}
