package diff

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/apiman/pkg/docs"
	"github.com/platinummonkey/apiman/pkg/schema"
)

// Analyzer analyzes differences between two API descriptions
type Analyzer struct{}

// NewAnalyzer creates a new diff analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Compare compares two documents and returns the differences. Changes are
// reported in the order entries appear: removals in old order, then
// additions and modifications in new order.
func (a *Analyzer) Compare(from, to *schema.Document) (*DiffResult, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("cannot compare nil documents")
	}

	result := &DiffResult{Changes: []Change{}}

	for _, oldEntry := range from.Entries {
		if _, exists := to.Get(oldEntry.Name); !exists {
			result.Changes = append(result.Changes, newChange(EntryRemoved, oldEntry.Name,
				oldEntry.Name, "",
				fmt.Sprintf("Entry '%s' was removed", oldEntry.Name)))
		}
	}

	for _, newEntry := range to.Entries {
		oldEntry, exists := from.Get(newEntry.Name)
		if !exists {
			result.Changes = append(result.Changes, newChange(EntryAdded, newEntry.Name,
				"", newEntry.Name,
				fmt.Sprintf("Entry '%s' was added", newEntry.Name)))
			continue
		}
		result.Changes = append(result.Changes, a.compareEntries(oldEntry, newEntry)...)
	}

	return result, nil
}

// compareEntries compares two versions of the same entry
func (a *Analyzer) compareEntries(oldEntry, newEntry *schema.Entry) []Change {
	name := newEntry.Name

	if oldEntry.Kind() != newEntry.Kind() {
		return []Change{newChange(KindChanged, name,
			oldEntry.Kind().String(), newEntry.Kind().String(),
			fmt.Sprintf("Entry '%s' changed from %s to %s", name, oldEntry.Kind(), newEntry.Kind()))}
	}

	changes := []Change{}
	argDocsChanged := false
	if newEntry.Kind() == schema.KindValue {
		if oldEntry.Type != newEntry.Type {
			changes = append(changes, newChange(TypeChanged, name,
				oldEntry.Type, newEntry.Type,
				fmt.Sprintf("Entry '%s' type changed from '%s' to '%s'", name, oldEntry.Type, newEntry.Type)))
		}
	} else {
		argChanges, docsChanged := a.compareArgs(oldEntry, newEntry)
		changes = append(changes, argChanges...)
		argDocsChanged = docsChanged

		oldReturn, newReturn := returnType(oldEntry), returnType(newEntry)
		if oldReturn != newReturn {
			changes = append(changes, newChange(ReturnChanged, name,
				oldReturn, newReturn,
				fmt.Sprintf("Entry '%s' return type changed from '%s' to '%s'", name, oldReturn, newReturn)))
		}
	}

	if argDocsChanged || documentation(oldEntry) != documentation(newEntry) {
		changes = append(changes, newChange(DocumentationChanged, name, "", "",
			fmt.Sprintf("Documentation of '%s' changed", name)))
	}

	return changes
}

// compareArgs compares the argument lists of a callable. Arguments are
// matched by name; the second result reports whether any surviving
// argument's description changed.
func (a *Analyzer) compareArgs(oldEntry, newEntry *schema.Entry) ([]Change, bool) {
	changes := []Change{}
	docsChanged := false
	oldArgs := argIndex(oldEntry.Args)
	newArgs := argIndex(newEntry.Args)

	for i, oldArg := range oldEntry.Args {
		location := fmt.Sprintf("%s:arg %s", newEntry.Name, oldArg.Name)
		j, exists := newArgs[oldArg.Name]
		if !exists {
			changes = append(changes, newChange(ArgRemoved, location,
				oldArg.Name, "",
				fmt.Sprintf("Argument '%s' was removed from '%s'", oldArg.Name, newEntry.Name)))
			continue
		}

		newArg := newEntry.Args[j]
		if oldArg.Description != newArg.Description {
			docsChanged = true
		}
		if i != j {
			changes = append(changes, newChange(ArgMoved, location,
				fmt.Sprintf("%d", i), fmt.Sprintf("%d", j),
				fmt.Sprintf("Argument '%s' moved from position %d to %d", oldArg.Name, i, j)))
		}
		if oldArg.Type != newArg.Type {
			changes = append(changes, newChange(ArgTypeChanged, location,
				oldArg.Type, newArg.Type,
				fmt.Sprintf("Argument '%s' type changed from '%s' to '%s'", oldArg.Name, oldArg.Type, newArg.Type)))
		}
		switch {
		case !oldArg.HasDefault && newArg.HasDefault:
			changes = append(changes, newChange(DefaultAdded, location,
				"", newArg.Default,
				fmt.Sprintf("Argument '%s' now defaults to %s", oldArg.Name, newArg.Default)))
		case oldArg.HasDefault && !newArg.HasDefault:
			changes = append(changes, newChange(DefaultRemoved, location,
				oldArg.Default, "",
				fmt.Sprintf("Argument '%s' no longer has a default", oldArg.Name)))
		case oldArg.HasDefault && oldArg.Default != newArg.Default:
			changes = append(changes, newChange(DefaultChanged, location,
				oldArg.Default, newArg.Default,
				fmt.Sprintf("Argument '%s' default changed from %s to %s", oldArg.Name, oldArg.Default, newArg.Default)))
		}
	}

	for _, newArg := range newEntry.Args {
		if _, exists := oldArgs[newArg.Name]; !exists {
			changes = append(changes, newChange(ArgAdded, fmt.Sprintf("%s:arg %s", newEntry.Name, newArg.Name),
				"", newArg.Name,
				fmt.Sprintf("Argument '%s' was added to '%s'", newArg.Name, newEntry.Name)))
		}
	}

	return changes, docsChanged
}

func newChange(changeType ChangeType, location, oldValue, newValue, description string) Change {
	return Change{
		Type:         changeType,
		Severity:     GetSeverity(changeType),
		Location:     location,
		OldValue:     oldValue,
		NewValue:     newValue,
		Description:  description,
		MigrationTip: GetMigrationTip(changeType),
	}
}

func argIndex(args []schema.Arg) map[string]int {
	index := make(map[string]int, len(args))
	for i, arg := range args {
		index[arg.Name] = i
	}
	return index
}

func returnType(entry *schema.Entry) string {
	if entry.Return == nil || entry.Return.Type == "" {
		return docs.VoidType
	}
	return entry.Return.Type
}

// documentation joins the prose of an entry; it has no effect on callers.
// Argument descriptions are compared per argument in compareArgs.
func documentation(entry *schema.Entry) string {
	returns := ""
	if entry.Return != nil {
		returns = entry.Return.Description
	}
	parts := []string{entry.Short, entry.Description, entry.Note, entry.Errors, entry.Example, returns}
	return strings.Join(parts, "\x00")
}
