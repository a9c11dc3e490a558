package docs

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/apiman/pkg/httputil"
	"github.com/platinummonkey/apiman/pkg/observability"
	"github.com/platinummonkey/apiman/pkg/schema"
)

// Loader returns the current API description
type Loader func(ctx context.Context) (*schema.Document, error)

// DocsHandlers provides HTTP handlers previewing rendered documentation
type DocsHandlers struct {
	load             Loader
	generator        *Generator
	markdownExporter *MarkdownExporter
	manExporter      *ManExporter
}

// EntrySummary is the JSON listing of one entry
type EntrySummary struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
	Short     string `json:"short,omitempty"`
}

// NewDocsHandlers creates new documentation handlers
func NewDocsHandlers(load Loader, markdown *MarkdownExporter, man *ManExporter) *DocsHandlers {
	return &DocsHandlers{
		load:             load,
		generator:        NewGenerator(),
		markdownExporter: markdown,
		manExporter:      man,
	}
}

// RegisterRoutes registers documentation routes
func (h *DocsHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api.md", h.getMarkdown).Methods("GET")
	router.HandleFunc("/entries", h.listEntries).Methods("GET")
	router.HandleFunc("/entries/{name}/markdown", h.getEntryMarkdown).Methods("GET")
	router.HandleFunc("/man/{name}", h.getManPage).Methods("GET")
}

// getMarkdown handles GET /api.md
func (h *DocsHandlers) getMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocumentation(w, r)
	if !ok {
		return
	}

	httputil.WriteDocument(w, "text/markdown; charset=utf-8", h.markdownExporter.Export(doc))
}

// listEntries handles GET /entries
func (h *DocsHandlers) listEntries(w http.ResponseWriter, r *http.Request) {
	doc, err := h.load(r.Context())
	if err != nil {
		h.loadError(w, r, err)
		return
	}

	summaries := make([]EntrySummary, 0, doc.Len())
	for _, entry := range doc.Entries {
		summaries = append(summaries, EntrySummary{
			Name:      entry.Name,
			Kind:      entry.Kind().String(),
			Signature: Signature(entry),
			Short:     entry.Short,
		})
	}

	httputil.WriteJSON(w, http.StatusOK, summaries)
}

// getEntryMarkdown handles GET /entries/{name}/markdown
func (h *DocsHandlers) getEntryMarkdown(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	doc, err := h.load(r.Context())
	if err != nil {
		h.loadError(w, r, err)
		return
	}

	entry, ok := doc.Get(name)
	if !ok {
		httputil.WriteNotFoundError(w, "entry not found: %s", name)
		return
	}

	httputil.WriteDocument(w, "text/markdown; charset=utf-8", h.markdownExporter.ExportEntry(entry))
}

// getManPage handles GET /man/{name} for entries and type summaries
func (h *DocsHandlers) getManPage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	doc, err := h.load(r.Context())
	if err != nil {
		h.loadError(w, r, err)
		return
	}

	var page string
	if entry, ok := doc.Get(name); ok {
		page, err = h.manExporter.Page(entry)
	} else {
		documentation, genErr := h.generator.Generate(doc)
		if genErr != nil {
			h.internalError(w, r, "failed to generate documentation", genErr)
			return
		}
		td := documentation.FindType(name)
		if td == nil {
			httputil.WriteNotFoundError(w, "page not found: %s", name)
			return
		}
		page, err = h.manExporter.TypePage(td)
	}

	if err != nil {
		var missing *schema.MissingFieldError
		if errors.As(err, &missing) {
			httputil.WriteError(w, http.StatusUnprocessableEntity, "failed to render man page: %v", err)
			return
		}
		h.internalError(w, r, "failed to render man page", err)
		return
	}

	w.Header().Set("Content-Disposition", "inline; filename="+h.manExporter.PageName(name)+"."+h.manExporter.Section())
	httputil.WriteDocument(w, "text/troff; charset=utf-8", page)
}

func (h *DocsHandlers) loadDocumentation(w http.ResponseWriter, r *http.Request) (*Documentation, bool) {
	doc, err := h.load(r.Context())
	if err != nil {
		h.loadError(w, r, err)
		return nil, false
	}

	documentation, err := h.generator.Generate(doc)
	if err != nil {
		h.internalError(w, r, "failed to generate documentation", err)
		return nil, false
	}
	return documentation, true
}

// loadError answers a failed load. A description missing a required field
// is the client's to fix; anything else is a server error.
func (h *DocsHandlers) loadError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *schema.MissingFieldError
	if errors.As(err, &missing) {
		httputil.WriteError(w, http.StatusUnprocessableEntity, "failed to load API description: %v", err)
		return
	}
	h.internalError(w, r, "failed to load API description", err)
}

func (h *DocsHandlers) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	observability.FromContext(r.Context()).WithError(err).Error(message)
	httputil.WriteInternalError(w, message, err)
}
