package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/apiman/pkg/docs"
	"github.com/platinummonkey/apiman/pkg/httputil"
	"github.com/platinummonkey/apiman/pkg/observability"
	"github.com/platinummonkey/apiman/pkg/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func newServeCommand(streams Streams) *Command {
	return &Command{
		Name:        "serve",
		Description: "Serve a live preview of the rendered documentation",
		Run: func(ctx context.Context, args []string) error {
			return runServe(ctx, streams, args)
		},
	}
}

func runServe(ctx context.Context, streams Streams, args []string) error {
	sess, err := newSession(streams, "serve")
	if err != nil {
		return err
	}

	flags := newFlagSet("serve", streams)
	addr := flags.String("addr", sess.cfg.Server.Addr, "Address to listen on")
	if err := flags.Parse(args); err != nil {
		return err
	}
	paths := flags.Args()
	if len(paths) == 0 {
		return fmt.Errorf("serve needs at least one input file")
	}

	stopTracing, err := sess.startTracing(ctx)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         *addr,
		Handler:      newServeHandler(sess, paths),
		ReadTimeout:  sess.cfg.Server.ReadTimeout,
		WriteTimeout: sess.cfg.Server.WriteTimeout,
	}

	shutdown := observability.NewShutdownManager(sess.logger, server, sess.cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(stopTracing)

	ctx, stop := signalContext(ctx)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		sess.logger.Infof("Serving documentation on %s", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = stopTracing(context.Background())
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		return shutdown.WaitForShutdown(ctx)
	}
}

// newServeHandler builds the preview router. The inputs are read again on
// every request so edits show up without a restart.
func newServeHandler(sess *session, paths []string) http.Handler {
	router := mux.NewRouter()
	router.Use(observability.HTTPMetricsMiddleware(sess.metrics))

	loader := func(ctx context.Context) (*schema.Document, error) {
		return sess.load(ctx, paths, nil)
	}
	handlers := docs.NewDocsHandlers(loader,
		docs.NewMarkdownExporter(docs.MarkdownOptions{
			Title:        sess.cfg.Markdown.Title,
			CodeLanguage: sess.cfg.Markdown.CodeLanguage,
		}),
		docs.NewManExporter(docs.ManOptions{
			Section:   sess.cfg.Man.Section,
			Source:    sess.cfg.Man.Source,
			Library:   sess.cfg.Man.Library,
			Copyright: sess.cfg.Man.Copyright,
			Prefix:    sess.cfg.Man.Prefix,
		}),
	)
	handlers.RegisterRoutes(router)
	observability.RegisterMetricsEndpoint(router, sess.registry)

	handler := httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(sess.logger),
		httputil.RecoveryMiddleware(sess.logger),
	)(router)
	return otelhttp.NewHandler(handler, "apiman")
}
