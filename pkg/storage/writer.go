package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/platinummonkey/apiman/pkg/observability"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BodyFunc extracts the part of a document that decides whether it changed
type BodyFunc func(content string) string

// Writer writes generated files through a Sink, skipping files whose body
// did not change since the last write
type Writer struct {
	sink    Sink
	body    BodyFunc
	notify  io.Writer
	digests *lru.LRU[string, string]
	logger  *logrus.Entry
	metrics *observability.Metrics
}

// WriterOption configures a Writer
type WriterOption func(*Writer)

// WithBody sets the body extractor. The default compares whole documents.
func WithBody(body BodyFunc) WriterOption {
	return func(w *Writer) {
		w.body = body
	}
}

// WithNotifier sets where "updated <path>" lines are printed
func WithNotifier(out io.Writer) WriterOption {
	return func(w *Writer) {
		w.notify = out
	}
}

// WithDigestCache remembers the body digest of up to size paths for ttl.
// A path whose new body matches its remembered digest is skipped without
// reading the sink. A size of zero disables the cache.
func WithDigestCache(size int, ttl time.Duration) WriterOption {
	return func(w *Writer) {
		if size <= 0 {
			w.digests = nil
			return
		}
		w.digests = lru.NewLRU[string, string](size, nil, ttl)
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Entry) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithMetrics records page outcomes
func WithMetrics(metrics *observability.Metrics) WriterOption {
	return func(w *Writer) {
		w.metrics = metrics
	}
}

// NewWriter creates a change-aware writer on sink
func NewWriter(sink Sink, opts ...WriterOption) *Writer {
	w := &Writer{
		sink:   sink,
		body:   func(content string) string { return content },
		notify: io.Discard,
		logger: logrus.NewEntry(observability.NewLogger("info", io.Discard)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write stores content at path unless the existing file has the same body.
// It reports whether a write happened.
func (w *Writer) Write(ctx context.Context, path, content string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Writer.Write",
		trace.WithAttributes(attribute.String("path", path)),
	)
	defer span.End()

	body := w.body(content)
	digest := bodyDigest(body)
	logger := w.logger.WithField("path", path)

	if w.digests != nil {
		if known, ok := w.digests.Get(path); ok && known == digest {
			logger.Debug("Page unchanged (cached digest)")
			span.SetAttributes(attribute.Bool("changed", false), attribute.Bool("cached", true))
			w.metrics.RecordPage(false, true)
			return false, nil
		}
	}

	existing, err := w.sink.Read(ctx, path)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Debug("Page does not exist yet")
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read existing page")
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		oldBody := w.body(string(existing))
		if oldBody == body {
			w.remember(path, digest)
			logger.Debug("Page unchanged")
			span.SetAttributes(attribute.Bool("changed", false), attribute.Bool("cached", false))
			w.metrics.RecordPage(false, false)
			return false, nil
		}
		if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
			logger.Debugf("Page changed:\n%s", unifiedDiff(path, oldBody, body))
		}
	}

	if err := w.sink.Write(ctx, path, []byte(content)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write page")
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.remember(path, digest)
	span.SetAttributes(attribute.Bool("changed", true))
	w.metrics.RecordPage(true, false)
	fmt.Fprintf(w.notify, "updated %s\n", path)
	return true, nil
}

// Forget drops every remembered digest
func (w *Writer) Forget() {
	if w.digests != nil {
		w.digests.Purge()
	}
}

func (w *Writer) remember(path, digest string) {
	if w.digests != nil {
		w.digests.Add(path, digest)
	}
}

func bodyDigest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

func unifiedDiff(path, oldBody, newBody string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldBody),
		B:        difflib.SplitLines(newBody),
		FromFile: path + " (old)",
		ToFile:   path + " (new)",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	return text
}
