package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/platinummonkey/apiman/pkg/config"
	"github.com/platinummonkey/apiman/pkg/observability"
	"github.com/platinummonkey/apiman/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("apiman/cli")

// session is what every subcommand shares for one invocation
type session struct {
	cfg      *config.Config
	logger   *logrus.Entry
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

func newSession(streams Streams, command string) (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := logrus.NewEntry(observability.NewLogger(cfg.LogLevel, streams.Err)).WithFields(logrus.Fields{
		"command": command,
		"run_id":  uuid.NewString(),
	})

	registry := prometheus.NewRegistry()
	return &session{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  observability.NewMetrics(registry),
	}, nil
}

// startTracing installs the tracer provider and returns its shutdown
func (sess *session) startTracing(ctx context.Context) (func(context.Context) error, error) {
	tp, err := observability.InitTracing(ctx, sess.cfg.OTel, sess.logger)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return observability.ShutdownTracing(ctx, tp, sess.logger)
	}, nil
}

// load parses the API description from paths, or from in when paths is empty
func (sess *session) load(ctx context.Context, paths []string, in io.Reader) (*schema.Document, error) {
	ctx, span := tracer.Start(ctx, "LoadDescription",
		trace.WithAttributes(attribute.StringSlice("inputs", paths)),
	)
	defer span.End()

	doc, err := schema.Load(ctx, paths, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load API description")
		return nil, fmt.Errorf("failed to load %s: %w", origin(paths), err)
	}

	span.SetAttributes(attribute.Int("entries", doc.Len()))
	sess.metrics.RecordLoad(doc.Len())
	sess.logger.WithField("entries", doc.Len()).Debugf("Loaded API description from %s", origin(paths))
	return doc, nil
}

func origin(paths []string) string {
	if len(paths) == 0 {
		return "standard input"
	}
	return strings.Join(paths, ", ")
}

// signalContext is cancelled on SIGINT or SIGTERM so long-running commands
// can stop cleanly
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
