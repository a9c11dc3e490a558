package diff

// ChangeType represents the type of change detected
type ChangeType string

const (
	EntryAdded           ChangeType = "entry_added"
	EntryRemoved         ChangeType = "entry_removed"
	KindChanged          ChangeType = "kind_changed"
	TypeChanged          ChangeType = "type_changed"
	ArgAdded             ChangeType = "arg_added"
	ArgRemoved           ChangeType = "arg_removed"
	ArgTypeChanged       ChangeType = "arg_type_changed"
	ArgMoved             ChangeType = "arg_moved"
	DefaultAdded         ChangeType = "default_added"
	DefaultRemoved       ChangeType = "default_removed"
	DefaultChanged       ChangeType = "default_changed"
	ReturnChanged        ChangeType = "return_changed"
	DocumentationChanged ChangeType = "documentation_changed"
)

// Severity represents the severity level of a change
type Severity string

const (
	Breaking    Severity = "breaking"
	NonBreaking Severity = "non_breaking"
	Warning     Severity = "warning"
)

// Change represents a single change between two API descriptions
type Change struct {
	Type         ChangeType `json:"type"`
	Severity     Severity   `json:"severity"`
	Location     string     `json:"location"`
	OldValue     string     `json:"old_value,omitempty"`
	NewValue     string     `json:"new_value,omitempty"`
	Description  string     `json:"description"`
	MigrationTip string     `json:"migration_tip,omitempty"`
}

// DiffResult contains all changes detected between two API descriptions
type DiffResult struct {
	Changes []Change `json:"changes"`
}

// HasBreaking reports whether any change is breaking
func (r *DiffResult) HasBreaking() bool {
	for _, change := range r.Changes {
		if change.Severity == Breaking {
			return true
		}
	}
	return false
}

// Count returns the number of changes with the given severity
func (r *DiffResult) Count(severity Severity) int {
	n := 0
	for _, change := range r.Changes {
		if change.Severity == severity {
			n++
		}
	}
	return n
}

// GetSeverity determines the severity of a change based on its type
func GetSeverity(changeType ChangeType) Severity {
	switch changeType {
	case EntryRemoved, KindChanged, TypeChanged, ArgRemoved, ArgTypeChanged,
		ArgMoved, DefaultRemoved, ReturnChanged:
		return Breaking

	case EntryAdded, DefaultAdded, DocumentationChanged:
		return NonBreaking

	case ArgAdded, DefaultChanged:
		// callers only notice when they relied on the old value or arity
		return Warning

	default:
		return Warning
	}
}

// GetMigrationTip provides a migration tip based on change type
func GetMigrationTip(changeType ChangeType) string {
	switch changeType {
	case EntryRemoved:
		return "Remove all references to this entry"
	case KindChanged:
		return "Switch between calling and reading this entry"
	case TypeChanged:
		return "Update code to handle the new value type"
	case ArgRemoved:
		return "Stop passing this argument"
	case ArgTypeChanged:
		return "Pass a value of the new argument type"
	case ArgMoved:
		return "Reorder positional arguments or pass them by name"
	case DefaultRemoved:
		return "Pass this argument explicitly"
	case ReturnChanged:
		return "Update code that uses the returned value"
	case ArgAdded:
		return "Pass the new argument unless it has a default"
	default:
		return ""
	}
}
