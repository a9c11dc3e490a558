package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/platinummonkey/apiman/pkg/docs"
)

func newMarkdownCommand(streams Streams) *Command {
	return &Command{
		Name:        "markdown",
		Description: "Render the API description as Markdown to stdout",
		Run: func(ctx context.Context, args []string) error {
			return runMarkdown(ctx, streams, args)
		},
	}
}

func runMarkdown(ctx context.Context, streams Streams, args []string) error {
	sess, err := newSession(streams, "markdown")
	if err != nil {
		return err
	}

	flags := newFlagSet("markdown", streams)
	title := flags.String("title", sess.cfg.Markdown.Title, "Title line of the document")
	lang := flags.String("lang", sess.cfg.Markdown.CodeLanguage, "Language of fenced code blocks")
	if err := flags.Parse(args); err != nil {
		return err
	}

	doc, err := sess.load(ctx, flags.Args(), streams.In)
	if err != nil {
		return err
	}

	start := time.Now()
	documentation, err := docs.NewGenerator().Generate(doc)
	if err != nil {
		sess.metrics.RecordRender("markdown", 0, time.Since(start), err)
		return err
	}

	exporter := docs.NewMarkdownExporter(docs.MarkdownOptions{
		Title:        *title,
		CodeLanguage: *lang,
	})
	output := exporter.Export(documentation)
	sess.metrics.RecordRender("markdown", doc.Len(), time.Since(start), nil)

	if _, err := io.WriteString(streams.Out, output); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}

	sess.logger.WithField("entries", doc.Len()).Debug("Rendered markdown")
	return nil
}
