// Package httputil holds the response helpers and middleware of the preview
// server.
//
// Responses:
//
//	httputil.WriteDocument(w, "text/markdown; charset=utf-8", markdown)
//	httputil.WriteJSON(w, http.StatusOK, summaries)
//	httputil.WriteNotFoundError(w, "entry not found: %s", name)
//
// Middleware, outermost first:
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)(router)
package httputil
