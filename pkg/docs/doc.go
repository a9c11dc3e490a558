// Package docs renders API descriptions as Markdown and groff man pages.
//
// # Overview
//
// A parsed schema.Document is arranged by the Generator into builtins, type
// sections and per-type aggregates. Two exporters share that arrangement and
// the signature builder:
//
//   - MarkdownExporter: one reference document, builtins first, then one
//     section per type
//   - ManExporter: one page per entry plus one summary page per type
//
// # Usage Example
//
// Generate documentation:
//
//	generator := docs.NewGenerator()
//	documentation, err := generator.Generate(doc)
//
// Export to Markdown:
//
//	exporter := docs.NewMarkdownExporter(docs.DefaultMarkdownOptions())
//	markdown := exporter.Export(documentation)
//
// Export man pages:
//
//	exporter := docs.NewManExporter(docs.DefaultManOptions())
//	page, err := exporter.Page(entry)
//	summary, err := exporter.TypePage(documentation.FindType("Text"))
//
// # Signatures
//
// Values render as "name : Type", callables as
// "name : func(a: T = default, b: U -> Result)". A callable without a return
// type returns Void.
//
// # Escaping
//
// Free text placed in man pages goes through EscapeRoff. Table cells and
// summary lines additionally pass InlineToRoff, which flattens them to one
// line and renders `code` spans in bold.
//
// # Page Headers
//
// Man pages start with comment lines and a dated .TH line. ManBody strips
// that header so regenerated pages can be compared by content alone.
package docs
