package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawEntry mirrors the YAML shape of an entry. Args and return are kept as
// nodes so that argument order and field presence survive decoding.
type rawEntry struct {
	Type        string    `yaml:"type"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Note        string    `yaml:"note"`
	Errors      string    `yaml:"errors"`
	Example     string    `yaml:"example"`
	Return      yaml.Node `yaml:"return"`
	Args        yaml.Node `yaml:"args"`
}

type rawArg struct {
	Type        string  `yaml:"type"`
	Default     *string `yaml:"default"`
	Description *string `yaml:"description"`
}

// Parse decodes an API description. An empty input yields an empty document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse API description: %w", err)
	}

	doc, _ := NewDocument()
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := resolve(root.Content[0])
	if isNull(top) {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse API description: line %d: expected a mapping of entries", top.Line)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i]
		entry, err := decodeEntry(key.Value, resolve(top.Content[i+1]))
		if err != nil {
			return nil, err
		}
		if err := doc.add(entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}
	}

	return doc, nil
}

func decodeEntry(name string, node *yaml.Node) (*Entry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("entry %q (line %d): expected a mapping", name, node.Line)
	}

	var raw rawEntry
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("entry %q: %w", name, err)
	}

	entry := &Entry{
		Name:        name,
		Type:        raw.Type,
		Short:       raw.Short,
		Description: raw.Description,
		Note:        raw.Note,
		Errors:      raw.Errors,
		Example:     raw.Example,
	}

	// A present but empty return still documents "returns nothing"
	if raw.Return.Kind != 0 {
		entry.Return = &Return{}
		ret := resolve(&raw.Return)
		if !isNull(ret) {
			if err := ret.Decode(entry.Return); err != nil {
				return nil, fmt.Errorf("entry %q: return: %w", name, err)
			}
		}
	}

	args, err := decodeArgs(name, resolve(&raw.Args))
	if err != nil {
		return nil, err
	}
	entry.Args = args

	return entry, nil
}

func decodeArgs(entryName string, node *yaml.Node) ([]Arg, error) {
	if node.Kind == 0 || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("entry %q (line %d): args must be a mapping", entryName, node.Line)
	}

	args := make([]Arg, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		argName := node.Content[i].Value
		if seen[argName] {
			return nil, fmt.Errorf("entry %q (line %d): duplicate argument %q", entryName, node.Content[i].Line, argName)
		}
		seen[argName] = true

		var raw rawArg
		value := resolve(node.Content[i+1])
		if !isNull(value) {
			if err := value.Decode(&raw); err != nil {
				return nil, fmt.Errorf("entry %q: argument %q: %w", entryName, argName, err)
			}
		}
		if raw.Description == nil {
			return nil, &MissingFieldError{Entry: entryName, Field: "args." + argName + ".description"}
		}

		arg := Arg{
			Name:        argName,
			Type:        raw.Type,
			Description: *raw.Description,
		}
		if raw.Default != nil {
			arg.Default = *raw.Default
			arg.HasDefault = true
		}
		args = append(args, arg)
	}

	return args, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
