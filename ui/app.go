package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"drafthours/domain/core"
	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/internal/errors"
	"drafthours/internal/report"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Service is the estimation surface the form needs
type Service interface {
	Estimate(ctx context.Context, req estimate.Request, strategy estimate.Strategy) (*estimate.Result, error)
	Catalog() estimate.Catalog
}

// App represents the UI application
type App struct {
	router    *chi.Mux
	service   Service
	templates *template.Template
	logger    *internal.Logger
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// PageData is what the form template renders
type PageData struct {
	Catalog estimate.Catalog
	Input   estimate.RequestInput
	Report  template.HTML
	Error   string
}

// NewApp creates a new UI application
func NewApp(config Config, service Service, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		// An unbounded maximum still offers ten choices.
		"until": func(from, to int) []int {
			if to < from {
				to = from + 9
			}
			var res []int
			for i := from; i <= to; i++ {
				res = append(res, i)
			}
			return res
		},
		"has": func(list []string, s string) bool {
			return slices.Contains(list, s)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	port := config.Port
	if port == "" {
		port = "8081"
	}

	app := &App{
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		logger:    logger,
		port:      port,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/estimate", a.handleEstimate)
}

// Handler returns the routed handler
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("[UI] Starting drafting estimator form on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	catalog := a.service.Catalog()
	a.renderTemplate(w, http.StatusOK, "index.html", PageData{
		Catalog: catalog,
		Input:   defaultInput(catalog),
	})
}

func (a *App) handleEstimate(w http.ResponseWriter, r *http.Request) {
	catalog := a.service.Catalog()
	in, err := parseForm(r)
	if err != nil {
		a.renderTemplate(w, http.StatusBadRequest, "index.html", PageData{Catalog: catalog, Input: in, Error: err.Error()})
		return
	}

	req, strategy, err := in.Build()
	if err == nil {
		var res *estimate.Result
		res, err = a.service.Estimate(r.Context(), req, strategy)
		if err == nil {
			a.renderTemplate(w, http.StatusOK, "index.html", PageData{
				Catalog: catalog,
				Input:   in,
				Report:  template.HTML(report.HTML(report.Markdown(req, res))),
			})
			return
		}
	}

	a.renderTemplate(w, errors.HTTPStatus(err), "index.html", PageData{Catalog: catalog, Input: in, Error: err.Error()})
}

// parseForm reads the form into a RequestInput. Non-numeric counts are
// reported as invalid requests for the offending field.
func parseForm(r *http.Request) (estimate.RequestInput, error) {
	if err := r.ParseForm(); err != nil {
		return estimate.RequestInput{}, core.NewValidationError("form", err.Error())
	}

	in := estimate.RequestInput{
		Strategy:          r.PostForm.Get("strategy"),
		DocumentType:      r.PostForm.Get("document_type"),
		Tool:              r.PostForm.Get("tool"),
		ComplexityClass:   r.PostForm.Get("complexity_class"),
		Subtypes:          r.PostForm["subtypes"],
		StartingCondition: r.PostForm.Get("starting_condition"),
	}

	numbers := []struct {
		field string
		dst   *int
	}{
		{"revision_count", &in.RevisionCount},
		{"duration_months", &in.DurationMonths},
		{"document_count", &in.DocumentCount},
	}
	for _, n := range numbers {
		raw := r.PostForm.Get(n.field)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return in, core.NewValidationError(n.field, fmt.Sprintf("%q is not a whole number", raw))
		}
		*n.dst = v
	}
	return in, nil
}

func defaultInput(catalog estimate.Catalog) estimate.RequestInput {
	subtypes := make([]string, len(catalog.DefaultSubtypes))
	for i, s := range catalog.DefaultSubtypes {
		subtypes[i] = string(s)
	}
	return estimate.RequestInput{
		Strategy:          string(estimate.StrategyLookup),
		DocumentType:      string(estimate.DocumentPID),
		Tool:              string(estimate.ToolAutoCAD),
		RevisionCount:     1,
		ComplexityClass:   string(estimate.ComplexityDraftingStandard),
		DurationMonths:    1,
		DocumentCount:     1,
		Subtypes:          subtypes,
		StartingCondition: string(estimate.StartFromScratch),
	}
}

// renderTemplate renders to a buffer first so a template error never
// leaves a half-written page
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("[UI] Template error for %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("[UI] Error writing response: %v", err)
	}
}
