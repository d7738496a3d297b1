package csslang

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition file schema:
//
//	classes:
//	  btn: "display: inline-flex; cursor: pointer"
//	  btn_primary:
//	    composes: [btn]
//	    declaration: "background: var(--color-primary)"
//	  card:
//	    ruleset: |
//	      .card { border-radius: 8px; }
//	      .card .title { font-weight: 600; }
//	variables:
//	  --spacing: "0.25rem"
//	  --color-primary:
//	    light: "#2563eb"
//	    dark: "#60a5fa"
//
// A scalar class entry is shorthand for a bare declaration; a scalar
// variable entry is shorthand for an unthemed (light-only) value.
// Pattern definitions carry Go functions and cannot appear here; they
// are registered in code.
type definitionFile struct {
	Classes   yaml.Node `yaml:"classes"`
	Variables yaml.Node `yaml:"variables"`
}

type classEntry struct {
	Declaration string   `yaml:"declaration"`
	Composes    []string `yaml:"composes"`
	Ruleset     string   `yaml:"ruleset"`
}

type variableEntry struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// LoadDefinitions reads a YAML definition file into a class map and a
// variable table. Mapping order in the file becomes the class map's
// insertion order.
func LoadDefinitions(ctx context.Context, path string) (*ClassMap, VariableTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading definitions %s: %w", path, err)
	}
	classes, vars, err := ParseDefinitions(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing definitions %s: %w", path, err)
	}
	return classes, vars, nil
}

// ParseDefinitions parses definition file content.
func ParseDefinitions(data []byte) (*ClassMap, VariableTable, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, err
	}

	classes := NewClassMap()
	if err := eachMappingEntry(&file.Classes, func(name string, value *yaml.Node) error {
		def, err := decodeClassEntry(value)
		if err != nil {
			return fmt.Errorf("class %q: %w", name, err)
		}
		classes.Set(name, def)
		return nil
	}); err != nil {
		return nil, nil, err
	}

	vars := make(VariableTable)
	if err := eachMappingEntry(&file.Variables, func(name string, value *yaml.Node) error {
		vv, err := decodeVariableEntry(value)
		if err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		vars[name] = vv
		return nil
	}); err != nil {
		return nil, nil, err
	}

	return classes, vars, nil
}

// eachMappingEntry walks a YAML mapping node in document order. A zero
// or null node is an absent section, not an error.
func eachMappingEntry(node *yaml.Node, fn func(name string, value *yaml.Node) error) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %s", node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func decodeClassEntry(node *yaml.Node) (*ClassDef, error) {
	if node.Kind == yaml.ScalarNode {
		return &ClassDef{Declaration: node.Value}, nil
	}
	var entry classEntry
	if err := node.Decode(&entry); err != nil {
		return nil, err
	}
	if entry.Ruleset != "" && (entry.Declaration != "" || len(entry.Composes) > 0) {
		return nil, fmt.Errorf("ruleset cannot be combined with declaration or composes")
	}
	return &ClassDef{
		Declaration: entry.Declaration,
		Composes:    entry.Composes,
		Ruleset:     entry.Ruleset,
	}, nil
}

func decodeVariableEntry(node *yaml.Node) (VarValue, error) {
	if node.Kind == yaml.ScalarNode {
		return VarValue{Light: node.Value}, nil
	}
	var entry variableEntry
	if err := node.Decode(&entry); err != nil {
		return VarValue{}, err
	}
	if entry.Light == "" {
		return VarValue{}, fmt.Errorf("missing light value")
	}
	return VarValue{Light: entry.Light, Dark: entry.Dark}, nil
}
