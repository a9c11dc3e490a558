package docs

import (
	"regexp"
	"strings"
)

// EscapeRoff escapes text for inclusion in a groff document. Backslashes
// become \[rs] and lines starting with a period or apostrophe are prefixed
// with the zero-width \& so they are not read as requests.
func EscapeRoff(text string) string {
	return escapeRoff(text, false)
}

// EscapeRoffSpaces is EscapeRoff that also turns every space into an
// unbreakable "\ ", keeping the text a single macro argument.
func EscapeRoffSpaces(text string) string {
	return escapeRoff(text, true)
}

func escapeRoff(text string, spaces bool) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, `\`, `\[rs]`)
		if strings.HasPrefix(line, ".") || strings.HasPrefix(line, "'") {
			line = `\&` + line
		}
		if spaces {
			line = strings.ReplaceAll(line, " ", `\ `)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

var inlineCodePattern = regexp.MustCompile("`([^`]*)`")

// InlineToRoff flattens text to one line and turns `code` spans into bold.
// It is meant for table cells and summary lines, never for blocks.
func InlineToRoff(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return inlineCodePattern.ReplaceAllString(text, `\fB${1}\fR`)
}

// roffCell prepares free text for a tbl cell: one line, no tabs, escaped,
// code spans in bold.
func roffCell(text string) string {
	text = strings.NewReplacer("\n", " ", "\t", " ").Replace(text)
	return InlineToRoff(EscapeRoff(text))
}
