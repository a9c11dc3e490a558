package docs

import (
	"strings"
	"testing"

	"github.com/platinummonkey/apiman/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func absEntry() *schema.Entry {
	return &schema.Entry{
		Name:        "abs",
		Short:       "absolute value",
		Description: "Returns the absolute value of a number.",
		Args: []schema.Arg{
			{Name: "x", Type: "Int", Description: "The number."},
		},
		Return: &schema.Return{Type: "Int", Description: "The absolute value."},
	}
}

func TestNewMarkdownExporter(t *testing.T) {
	exporter := NewMarkdownExporter(MarkdownOptions{})
	if exporter == nil {
		t.Fatal("Expected non-nil MarkdownExporter")
	}
	assert.Equal(t, "API", exporter.opts.Title)
}

func TestMarkdownExporter_Export_EmptyDoc(t *testing.T) {
	exporter := NewMarkdownExporter(DefaultMarkdownOptions())

	result := exporter.Export(&Documentation{})

	assert.Equal(t, "% API\n\n# Builtins\n\n", result)
}

func TestMarkdownExporter_Export_CustomTitle(t *testing.T) {
	exporter := NewMarkdownExporter(MarkdownOptions{Title: "Stdlib"})

	result := exporter.Export(&Documentation{})

	assert.True(t, strings.HasPrefix(result, "% Stdlib\n"))
}

func TestMarkdownExporter_ExportEntry_RoundTrip(t *testing.T) {
	exporter := NewMarkdownExporter(DefaultMarkdownOptions())

	result := exporter.ExportEntry(&schema.Entry{
		Name:   "abs",
		Args:   []schema.Arg{{Name: "x", Type: "Int", Description: "The number."}},
		Return: &schema.Return{Type: "Int"},
	})

	assert.True(t, strings.HasPrefix(result, "## abs\n\n```\nabs : func(x: Int -> Int)\n```\n"), result)
}

func TestMarkdownExporter_ExportEntry_Full(t *testing.T) {
	exporter := NewMarkdownExporter(MarkdownOptions{CodeLanguage: "tomo"})
	entry := &schema.Entry{
		Name:        "Text.split",
		Description: "Splits text.\n",
		Note:        "Empty pieces are kept.",
		Errors:      "Fails on invalid UTF-8.",
		Args: []schema.Arg{
			{Name: "text", Type: "Text", Description: "The text\nto split."},
			{Name: "delimiter", Type: "Text", Default: `","`, HasDefault: true, Description: "Separator | literal."},
			{Name: "limit", Description: "Maximum pieces."},
		},
		Return:  &schema.Return{Type: "[Text]"},
		Example: "say(\"a,b\".split())\n",
	}

	result := exporter.ExportEntry(entry)

	expected := "## Text.split\n" +
		"\n" +
		"```tomo\n" +
		"Text.split : func(text: Text, delimiter: Text = \",\", limit -> [Text])\n" +
		"```\n" +
		"\n" +
		"Splits text.\n" +
		"\n" +
		"Empty pieces are kept.\n" +
		"\n" +
		"Fails on invalid UTF-8.\n" +
		"\n" +
		"Argument | Type | Description | Default\n" +
		"---------|------|-------------|---------\n" +
		"text | `Text` | The text to split. |\n" +
		"delimiter | `Text` | Separator \\| literal. | **Default:** `\",\"`\n" +
		"limit |  | Maximum pieces. |\n" +
		"\n" +
		"**Return:** Nothing.\n" +
		"\n" +
		"**Example:**\n" +
		"```tomo\n" +
		"say(\"a,b\".split())\n" +
		"```\n" +
		"\n"

	assert.Equal(t, expected, result)
}

func TestMarkdownExporter_ExportEntry_OptionalSections(t *testing.T) {
	exporter := NewMarkdownExporter(DefaultMarkdownOptions())

	result := exporter.ExportEntry(&schema.Entry{Name: "Num.PI", Type: "Num", Description: "Pi."})

	assert.Contains(t, result, "Num.PI : Num")
	assert.NotContains(t, result, "Argument | Type")
	assert.NotContains(t, result, "**Return:**")
	assert.NotContains(t, result, "**Example:**")
}

func TestMarkdownExporter_ArgWithoutDefault(t *testing.T) {
	exporter := NewMarkdownExporter(DefaultMarkdownOptions())

	result := exporter.ExportEntry(&schema.Entry{
		Name: "area.perimeter",
		Args: []schema.Arg{{Name: "radius", Type: "Float", Description: "the radius"}},
	})

	// the Default column stays, its cell is empty
	assert.Contains(t, result, "Argument | Type | Description | Default\n")
	assert.Contains(t, result, "radius | `Float` | the radius |\n")
	assert.NotContains(t, result, "**Default:**")
}

func TestMarkdownExporter_Export_Sections(t *testing.T) {
	doc, err := schema.NewDocument(
		&schema.Entry{Name: "Circle.perimeter", Description: "Perimeter."},
		absEntry(),
		&schema.Entry{Name: "Circle.area", Description: "Area."},
		&schema.Entry{Name: "Square.area", Description: "Area."},
	)
	require.NoError(t, err)
	documentation, err := NewGenerator().Generate(doc)
	require.NoError(t, err)

	result := NewMarkdownExporter(DefaultMarkdownOptions()).Export(documentation)

	order := []string{
		"% API\n",
		"# Builtins\n",
		"## abs\n",
		"# Circle\n",
		"## Circle.area\n",
		"## Circle.perimeter\n",
		"# Square\n",
		"## Square.area\n",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(result, marker)
		require.NotEqual(t, -1, idx, "missing %q", marker)
		assert.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}
	assert.Equal(t, 1, strings.Count(result, "# Circle\n"))
}
