package docs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/platinummonkey/apiman/pkg/schema"
)

// ManOptions configures the man page exporter
type ManOptions struct {
	// Section is the manual section, also used as the file extension
	Section string
	// Source is the footer text of the .TH line
	Source string
	// Library is printed in the LIBRARY section
	Library string
	// Copyright holder; the copyright comment is omitted when empty
	Copyright string
	// Prefix is prepended to every page name
	Prefix string
	// Now supplies the date stamped into page headers
	Now func() time.Time
}

// DefaultManOptions returns the default man page options
func DefaultManOptions() ManOptions {
	return ManOptions{
		Section: "3",
		Source:  "API man-pages",
		Library: "API Reference",
		Now:     time.Now,
	}
}

// ManExporter renders entries as groff man pages
type ManExporter struct {
	opts ManOptions
}

// NewManExporter creates a man page exporter. Zero fields take their defaults.
func NewManExporter(opts ManOptions) *ManExporter {
	defaults := DefaultManOptions()
	if opts.Section == "" {
		opts.Section = defaults.Section
	}
	if opts.Source == "" {
		opts.Source = defaults.Source
	}
	if opts.Library == "" {
		opts.Library = defaults.Library
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	return &ManExporter{opts: opts}
}

// Section returns the manual section pages are rendered for
func (e *ManExporter) Section() string {
	return e.opts.Section
}

// PageName returns the page name for an entry or type name
func (e *ManExporter) PageName(name string) string {
	return e.opts.Prefix + name
}

// PagePath returns the file a page is written to inside dir
func (e *ManExporter) PagePath(dir, name string) string {
	return filepath.Join(dir, e.PageName(name)+"."+e.opts.Section)
}

// Page renders the man page of one entry
func (e *ManExporter) Page(entry *schema.Entry) (string, error) {
	if entry.Short == "" {
		return "", &schema.MissingFieldError{Entry: entry.Name, Field: "short"}
	}
	if entry.Description == "" {
		return "", &schema.MissingFieldError{Entry: entry.Name, Field: "description"}
	}

	var b strings.Builder
	e.writeHeader(&b, entry.Name)

	b.WriteString(".SH NAME\n")
	fmt.Fprintf(&b, "%s \\- %s\n", entry.Name, EscapeRoff(oneLine(entry.Short)))
	b.WriteString(".SH LIBRARY\n")
	b.WriteString(EscapeRoff(e.opts.Library) + "\n")
	b.WriteString(".SH SYNOPSIS\n")
	b.WriteString(".nf\n")
	b.WriteString(manSignature(entry) + "\n")
	b.WriteString(".fi\n")
	b.WriteString(".SH DESCRIPTION\n")
	b.WriteString(EscapeRoff(trimBlock(entry.Description)) + "\n")

	if len(entry.Args) > 0 {
		e.writeArgs(&b, entry)
	}

	if entry.Return != nil {
		b.WriteString(".SH RETURN\n")
		b.WriteString(EscapeRoff(returnDescription(entry.Return)) + "\n")
	}

	if entry.Note != "" {
		b.WriteString(".SH NOTES\n")
		b.WriteString(EscapeRoff(trimBlock(entry.Note)) + "\n")
	}

	if entry.Errors != "" {
		b.WriteString(".SH ERRORS\n")
		b.WriteString(EscapeRoff(trimBlock(entry.Errors)) + "\n")
	}

	if entry.Example != "" {
		b.WriteString(".SH EXAMPLES\n")
		b.WriteString(".EX\n")
		b.WriteString(EscapeRoff(trimBlock(entry.Example)) + "\n")
		b.WriteString(".EE\n")
	}

	if typeName, _, ok := entry.Owner(); ok {
		b.WriteString(".SH SEE ALSO\n")
		fmt.Fprintf(&b, ".BR %s (%s)\n", e.PageName(typeName), e.opts.Section)
	}

	return b.String(), nil
}

// writeArgs writes the argument table. The Default column only appears
// when at least one argument declares a default.
func (e *ManExporter) writeArgs(b *strings.Builder, entry *schema.Entry) {
	hasDefaults := entry.HasDefaults()

	b.WriteString(".SH ARGUMENTS\n")
	b.WriteString(".TS\n")
	b.WriteString("allbox;\n")
	if hasDefaults {
		b.WriteString("lb lb lbx lb\n")
		b.WriteString("l l l l.\n")
		b.WriteString("Name\tType\tDescription\tDefault\n")
	} else {
		b.WriteString("lb lb lbx\n")
		b.WriteString("l l l.\n")
		b.WriteString("Name\tType\tDescription\n")
	}

	for _, arg := range entry.Args {
		cells := []string{roffCell(arg.Name), roffCell(arg.Type), roffCell(arg.Description)}
		if hasDefaults {
			defaultValue := "-"
			if arg.HasDefault {
				defaultValue = EscapeRoffSpaces(strings.NewReplacer("\n", " ", "\t", " ").Replace(arg.Default))
			}
			cells = append(cells, defaultValue)
		}
		b.WriteString(strings.Join(cells, "\t") + "\n")
	}
	b.WriteString(".TE\n")
}

// TypePage renders the summary page of a type and its methods
func (e *ManExporter) TypePage(td *TypeDoc) (string, error) {
	var b strings.Builder
	e.writeHeader(&b, td.Name)

	b.WriteString(".SH NAME\n")
	fmt.Fprintf(&b, "%s \\- the %s type\n", td.Name, td.Name)
	b.WriteString(".SH LIBRARY\n")
	b.WriteString(EscapeRoff(e.opts.Library) + "\n")
	b.WriteString(".SH METHODS\n")

	for _, method := range td.Methods {
		if method.Description == "" {
			return "", &schema.MissingFieldError{Entry: method.Name, Field: "description"}
		}
		b.WriteString(".TP\n")
		b.WriteString(manSignature(method) + "\n")
		b.WriteString(roffCell(method.Description) + "\n")
		b.WriteString(".sp\n")
		b.WriteString("For more, see:\n")
		fmt.Fprintf(&b, ".BR %s (%s)\n", e.PageName(method.Name), e.opts.Section)
	}

	return b.String(), nil
}

// writeHeader writes the page header: comment lines, then the .TH line.
// Everything up to and including .TH varies between runs; see ManBody.
func (e *ManExporter) writeHeader(b *strings.Builder, title string) {
	now := e.opts.Now()
	b.WriteString(`'\" t` + "\n")
	if e.opts.Copyright != "" {
		fmt.Fprintf(b, `.\" Copyright (c) %d %s`+"\n", now.Year(), e.opts.Copyright)
		b.WriteString(`.\" All rights reserved.` + "\n")
	}
	b.WriteString(`.\"` + "\n")
	fmt.Fprintf(b, ".TH %s %s %s \"%s\"\n", title, e.opts.Section, now.Format("2006-01-02"), e.opts.Source)
}

// ManBody strips the header of a rendered page: the leading comment lines
// and the .TH line. Content without that header is returned unchanged.
func ManBody(content string) string {
	rest := content
	for {
		line, next, found := strings.Cut(rest, "\n")
		switch {
		case line == ".TH" || strings.HasPrefix(line, ".TH "):
			return next
		case strings.HasPrefix(line, `.\"`) || strings.HasPrefix(line, `'\"`):
		default:
			return content
		}
		if !found {
			return content
		}
		rest = next
	}
}

func manSignature(entry *schema.Entry) string {
	return ".BI " + EscapeRoffSpaces(Signature(entry))
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
