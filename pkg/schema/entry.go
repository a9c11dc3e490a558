package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes values from callables
type Kind int

const (
	KindCallable Kind = iota
	KindValue
)

func (k Kind) String() string {
	if k == KindValue {
		return "value"
	}
	return "callable"
}

// Entry is one documented API item
type Entry struct {
	Name        string
	Type        string
	Short       string
	Description string
	Note        string
	Errors      string
	Example     string
	Return      *Return
	Args        []Arg
}

// Arg describes one argument of a callable entry
type Arg struct {
	Name        string
	Type        string
	Default     string
	HasDefault  bool
	Description string
}

// Return describes the result of a callable entry
type Return struct {
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
}

// Kind reports whether the entry is a value or a callable
func (e *Entry) Kind() Kind {
	if e.Type != "" {
		return KindValue
	}
	return KindCallable
}

// IsMethod reports whether the entry is owned by a type
func (e *Entry) IsMethod() bool {
	return strings.Contains(e.Name, ".")
}

// Owner splits a method name into its type and method parts.
// ok is false for builtins.
func (e *Entry) Owner() (typeName, method string, ok bool) {
	return strings.Cut(e.Name, ".")
}

// HasDefaults reports whether any argument declares a default
func (e *Entry) HasDefaults() bool {
	for _, arg := range e.Args {
		if arg.HasDefault {
			return true
		}
	}
	return false
}

// MissingFieldError reports an entry lacking a field needed for rendering
type MissingFieldError struct {
	Entry string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("entry %q: missing required field %q", e.Entry, e.Field)
}

// Document is a parsed API description. Entries keep their source order.
type Document struct {
	Entries []*Entry
	index   map[string]*Entry
}

// NewDocument builds a document from entries, rejecting duplicate names
func NewDocument(entries ...*Entry) (*Document, error) {
	doc := &Document{
		Entries: make([]*Entry, 0, len(entries)),
		index:   make(map[string]*Entry, len(entries)),
	}
	for _, entry := range entries {
		if err := doc.add(entry); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) add(entry *Entry) error {
	if entry.Name == "" {
		return fmt.Errorf("entry with empty name")
	}
	if _, exists := d.index[entry.Name]; exists {
		return fmt.Errorf("duplicate entry %q", entry.Name)
	}
	d.index[entry.Name] = entry
	d.Entries = append(d.Entries, entry)
	return nil
}

// Get looks up an entry by name
func (d *Document) Get(name string) (*Entry, bool) {
	entry, ok := d.index[name]
	return entry, ok
}

// Len returns the number of entries
func (d *Document) Len() int {
	return len(d.Entries)
}

// Builtins returns the entries without an owning type, sorted by name
func (d *Document) Builtins() []*Entry {
	return d.sorted(func(e *Entry) bool { return !e.IsMethod() })
}

// Methods returns the type-owned entries, sorted by name
func (d *Document) Methods() []*Entry {
	return d.sorted((*Entry).IsMethod)
}

func (d *Document) sorted(keep func(*Entry) bool) []*Entry {
	result := make([]*Entry, 0, len(d.Entries))
	for _, entry := range d.Entries {
		if keep(entry) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
