package docs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/platinummonkey/apiman/pkg/schema"
)

// Documentation is an API description arranged for rendering
type Documentation struct {
	// Builtins holds entries without an owning type, sorted by name
	Builtins []*schema.Entry
	// Sections holds the type sections of the Markdown reference, in order
	Sections []*Section
	// Types holds one aggregate per type owning at least one method
	Types []*TypeDoc
}

// Section is a run of methods introduced by a type heading
type Section struct {
	Name    string
	Entries []*schema.Entry
}

// TypeDoc groups the methods owned by one type
type TypeDoc struct {
	Name    string
	Methods []*schema.Entry
}

// Generator arranges a parsed document into sections
type Generator struct{}

// NewGenerator creates a new documentation generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate arranges the document's entries for rendering
func (g *Generator) Generate(doc *schema.Document) (*Documentation, error) {
	if doc == nil {
		return nil, fmt.Errorf("no API description to document")
	}

	methods := doc.Methods()
	return &Documentation{
		Builtins: doc.Builtins(),
		Sections: groupSections(methods),
		Types:    groupTypes(methods),
	}, nil
}

var sectionPattern = regexp.MustCompile(`^(\w+)\.`)

// groupSections folds sorted method entries into sections. The name of the
// section being filled is threaded through the fold as its accumulator.
func groupSections(methods []*schema.Entry) []*Section {
	var (
		sections []*Section
		current  string
	)
	for _, entry := range methods {
		sections, current = foldSection(sections, current, entry)
	}
	return sections
}

func foldSection(sections []*Section, current string, entry *schema.Entry) ([]*Section, string) {
	if current == "" || !strings.HasPrefix(entry.Name, current+".") {
		current = sectionName(entry.Name)
		sections = append(sections, &Section{Name: current})
	}
	last := sections[len(sections)-1]
	last.Entries = append(last.Entries, entry)
	return sections, current
}

// sectionName derives the type prefix of a method name
func sectionName(name string) string {
	if match := sectionPattern.FindStringSubmatch(name); match != nil {
		return match[1]
	}
	prefix, _, _ := strings.Cut(name, ".")
	return prefix
}

func groupTypes(methods []*schema.Entry) []*TypeDoc {
	byType := make(map[string]*TypeDoc)
	for _, entry := range methods {
		typeName, _, ok := entry.Owner()
		if !ok {
			continue
		}
		td, exists := byType[typeName]
		if !exists {
			td = &TypeDoc{Name: typeName}
			byType[typeName] = td
		}
		td.Methods = append(td.Methods, entry)
	}

	types := make([]*TypeDoc, 0, len(byType))
	for _, td := range byType {
		sort.Slice(td.Methods, func(i, j int) bool {
			return td.Methods[i].Name < td.Methods[j].Name
		})
		types = append(types, td)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].Name < types[j].Name
	})
	return types
}

// Summary returns a summary of the documentation
func (d *Documentation) Summary() string {
	methods := 0
	for _, td := range d.Types {
		methods += len(td.Methods)
	}
	return fmt.Sprintf("Builtins: %d, Types: %d, Methods: %d",
		len(d.Builtins), len(d.Types), methods)
}

// FindType finds a type aggregate by name
func (d *Documentation) FindType(name string) *TypeDoc {
	for _, td := range d.Types {
		if td.Name == name {
			return td
		}
	}
	return nil
}
