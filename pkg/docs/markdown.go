package docs

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/apiman/pkg/schema"
)

// MarkdownOptions configures the Markdown exporter
type MarkdownOptions struct {
	// Title is written as the "% Title" header line
	Title string
	// CodeLanguage is the info string of fenced code blocks
	CodeLanguage string
}

// DefaultMarkdownOptions returns the default Markdown options
func DefaultMarkdownOptions() MarkdownOptions {
	return MarkdownOptions{Title: "API"}
}

// MarkdownExporter exports documentation to Markdown format
type MarkdownExporter struct {
	opts MarkdownOptions
}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter(opts MarkdownOptions) *MarkdownExporter {
	if opts.Title == "" {
		opts.Title = DefaultMarkdownOptions().Title
	}
	return &MarkdownExporter{opts: opts}
}

// Export exports the whole reference: builtins first, then one section per type
func (e *MarkdownExporter) Export(doc *Documentation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%% %s\n\n", e.opts.Title))

	b.WriteString("# Builtins\n\n")
	for _, entry := range doc.Builtins {
		e.writeEntry(&b, entry)
	}

	for _, section := range doc.Sections {
		b.WriteString(fmt.Sprintf("# %s\n\n", section.Name))
		for _, entry := range section.Entries {
			e.writeEntry(&b, entry)
		}
	}

	return b.String()
}

// ExportEntry exports a single entry
func (e *MarkdownExporter) ExportEntry(entry *schema.Entry) string {
	var b strings.Builder
	e.writeEntry(&b, entry)
	return b.String()
}

// writeEntry writes one entry followed by a blank line
func (e *MarkdownExporter) writeEntry(b *strings.Builder, entry *schema.Entry) {
	b.WriteString(fmt.Sprintf("## %s\n\n", entry.Name))
	e.writeCode(b, Signature(entry))
	b.WriteString("\n")

	for _, text := range []string{entry.Description, entry.Note, entry.Errors} {
		if text != "" {
			b.WriteString(trimBlock(text))
			b.WriteString("\n\n")
		}
	}

	if len(entry.Args) > 0 {
		e.writeArgs(b, entry.Args)
		b.WriteString("\n")
	}

	if entry.Return != nil {
		b.WriteString(fmt.Sprintf("**Return:** %s\n\n", returnDescription(entry.Return)))
	}

	if entry.Example != "" {
		b.WriteString("**Example:**\n")
		e.writeCode(b, trimBlock(entry.Example))
		b.WriteString("\n")
	}
}

// writeArgs writes the argument table
func (e *MarkdownExporter) writeArgs(b *strings.Builder, args []schema.Arg) {
	b.WriteString("Argument | Type | Description | Default\n")
	b.WriteString("---------|------|-------------|---------\n")

	for _, arg := range args {
		argType := ""
		if arg.Type != "" {
			argType = "`" + arg.Type + "`"
		}
		defaultValue := ""
		if arg.HasDefault {
			defaultValue = "**Default:** `" + arg.Default + "`"
		}
		row := fmt.Sprintf("%s | %s | %s | %s", arg.Name, argType, markdownCell(arg.Description), defaultValue)
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteString("\n")
	}
}

func (e *MarkdownExporter) writeCode(b *strings.Builder, code string) {
	b.WriteString("```" + e.opts.CodeLanguage + "\n")
	b.WriteString(code)
	b.WriteString("\n```\n")
}

// markdownCell keeps free text on one table row
func markdownCell(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")
	return strings.ReplaceAll(text, "|", `\|`)
}

func returnDescription(ret *schema.Return) string {
	if ret.Description == "" {
		return "Nothing."
	}
	return trimBlock(ret.Description)
}

// trimBlock drops the trailing newlines YAML block scalars carry
func trimBlock(text string) string {
	return strings.TrimRight(text, "\n")
}
