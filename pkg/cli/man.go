package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/platinummonkey/apiman/pkg/docs"
	"github.com/platinummonkey/apiman/pkg/docs/diff"
	"github.com/platinummonkey/apiman/pkg/observability"
	"github.com/platinummonkey/apiman/pkg/schema"
	"github.com/platinummonkey/apiman/pkg/storage"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errPageCollision = errors.New("page name collision")

func newManCommand(streams Streams) *Command {
	return &Command{
		Name:        "man",
		Description: "Write one man page per entry and one per type",
		Run: func(ctx context.Context, args []string) error {
			return runMan(ctx, streams, args)
		},
	}
}

func runMan(ctx context.Context, streams Streams, args []string) error {
	sess, err := newSession(streams, "man")
	if err != nil {
		return err
	}

	flags := newFlagSet("man", streams)
	dir := flags.String("dir", "", "Directory man pages are written to (default $APIMAN_MAN_DIR or man/man<section>)")
	section := flags.String("section", sess.cfg.Man.Section, "Manual section")
	prefix := flags.String("prefix", sess.cfg.Man.Prefix, "Prefix of every page name")
	watch := flags.Bool("watch", false, "Regenerate pages whenever an input file changes")
	metricsFile := flags.String("metrics-file", "", "Write Prometheus metrics to this file after each run")
	if err := flags.Parse(args); err != nil {
		return err
	}
	paths := flags.Args()
	if *watch && len(paths) == 0 {
		return fmt.Errorf("watch mode needs at least one input file")
	}
	if *dir == "" {
		*dir = sess.cfg.Man.PageDir(*section)
	}

	stopTracing, err := sess.startTracing(ctx)
	if err != nil {
		return err
	}
	defer stopTracing(context.Background())

	sink, err := storage.NewSink(ctx, sess.cfg.Sink)
	if err != nil {
		return fmt.Errorf("failed to create sink: %w", err)
	}

	generator := &pageGenerator{
		exporter: docs.NewManExporter(docs.ManOptions{
			Section:   *section,
			Source:    sess.cfg.Man.Source,
			Library:   sess.cfg.Man.Library,
			Copyright: sess.cfg.Man.Copyright,
			Prefix:    *prefix,
		}),
		writer: storage.NewWriter(sink,
			storage.WithBody(docs.ManBody),
			storage.WithNotifier(streams.Out),
			storage.WithLogger(sess.logger),
			storage.WithMetrics(sess.metrics),
			storage.WithDigestCache(sess.cfg.Cache.Size, sess.cfg.Cache.TTL),
		),
		dir:     *dir,
		logger:  sess.logger,
		metrics: sess.metrics,
	}

	doc, err := sess.load(ctx, paths, streams.In)
	if err != nil {
		return err
	}
	if _, err := generator.Generate(ctx, doc); err != nil {
		return err
	}
	if err := writeMetricsFile(sess.metrics, *metricsFile); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	ctx, stop := signalContext(ctx)
	defer stop()

	watcher, err := newInputWatcher(paths, sess.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	current := doc
	return watcher.Run(ctx, func(ctx context.Context) error {
		next, err := sess.load(ctx, paths, nil)
		if err != nil {
			return err
		}
		logChanges(sess.logger, current, next)
		current = next

		if _, err := generator.Generate(ctx, next); err != nil {
			return err
		}
		return writeMetricsFile(sess.metrics, *metricsFile)
	})
}

// pageGenerator renders man pages and writes them through the change-aware
// writer
type pageGenerator struct {
	exporter *docs.ManExporter
	writer   *storage.Writer
	dir      string
	logger   *logrus.Entry
	metrics  *observability.Metrics
}

// Generate writes the page of every entry in source order, then the
// aggregate page of every type. It returns how many files were updated.
// A failure stops the run; pages written before it stay in place.
func (g *pageGenerator) Generate(ctx context.Context, doc *schema.Document) (int, error) {
	ctx, span := tracer.Start(ctx, "GenerateManPages",
		trace.WithAttributes(attribute.Int("entries", doc.Len())),
	)
	defer span.End()

	start := time.Now()
	updated, err := g.generate(ctx, doc)
	g.metrics.RecordRender("man", doc.Len(), time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate man pages")
		return updated, err
	}

	span.SetAttributes(attribute.Int("updated", updated))
	g.logger.WithFields(logrus.Fields{
		"entries":  doc.Len(),
		"updated":  updated,
		"duration": time.Since(start),
	}).Info("Generated man pages")
	return updated, nil
}

func (g *pageGenerator) generate(ctx context.Context, doc *schema.Document) (int, error) {
	documentation, err := docs.NewGenerator().Generate(doc)
	if err != nil {
		return 0, err
	}

	if err := g.checkPaths(doc, documentation); err != nil {
		return 0, err
	}

	updated := 0
	write := func(name, page string) error {
		changed, err := g.writer.Write(ctx, g.exporter.PagePath(g.dir, name), page)
		if err != nil {
			return err
		}
		if changed {
			updated++
		}
		return nil
	}

	for _, entry := range doc.Entries {
		page, err := g.exporter.Page(entry)
		if err != nil {
			return updated, fmt.Errorf("failed to render %s: %w", entry.Name, err)
		}
		if err := write(entry.Name, page); err != nil {
			return updated, err
		}
	}

	for _, td := range documentation.Types {
		page, err := g.exporter.TypePage(td)
		if err != nil {
			return updated, fmt.Errorf("failed to render type %s: %w", td.Name, err)
		}
		if err := write(td.Name, page); err != nil {
			return updated, err
		}
	}

	return updated, nil
}

// checkPaths fails when two pages would be written to the same file, as
// happens when a builtin shares its name with a type
func (g *pageGenerator) checkPaths(doc *schema.Document, documentation *docs.Documentation) error {
	owners := make(map[string]string, doc.Len()+len(documentation.Types))
	claim := func(owner, name string) error {
		path := g.exporter.PagePath(g.dir, name)
		if other, taken := owners[path]; taken {
			return fmt.Errorf("%w: %s and %s both map to %s", errPageCollision, other, owner, path)
		}
		owners[path] = owner
		return nil
	}

	for _, entry := range doc.Entries {
		if err := claim("entry "+entry.Name, entry.Name); err != nil {
			return err
		}
	}
	for _, td := range documentation.Types {
		if err := claim("type "+td.Name, td.Name); err != nil {
			return err
		}
	}
	return nil
}

// logChanges logs what changed between two loads of the API description
func logChanges(logger *logrus.Entry, from, to *schema.Document) {
	result, err := diff.NewAnalyzer().Compare(from, to)
	if err != nil {
		logger.WithError(err).Warn("Failed to compare API descriptions")
		return
	}

	for _, change := range result.Changes {
		entry := logger.WithFields(logrus.Fields{
			"change":   change.Type,
			"location": change.Location,
			"severity": change.Severity,
		})
		if change.Severity == diff.Breaking {
			entry.Warn(change.Description)
		} else {
			entry.Info(change.Description)
		}
	}
}

func writeMetricsFile(metrics *observability.Metrics, path string) error {
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path)
}
