package api

import (
	"context"
	"net/http"

	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/internal/errors"
	"drafthours/internal/profiling"

	"github.com/gin-gonic/gin"
)

// Service is the estimation surface the HTTP handlers need
type Service interface {
	Estimate(ctx context.Context, req estimate.Request, strategy estimate.Strategy) (*estimate.Result, error)
	Table() *estimate.Table
	Catalog() estimate.Catalog
	Reload(ctx context.Context) (*estimate.Table, error)
}

// Handler serves the JSON API
type Handler struct {
	service  Service
	profiler *profiling.TableProfiler
	logger   *internal.Logger
}

// NewHandler creates a new API handler
func NewHandler(service Service, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handler{
		service:  service,
		profiler: profiling.NewTableProfiler(),
		logger:   logger,
	}
}

// EstimateResponse echoes the normalized request next to its result
type EstimateResponse struct {
	Request estimate.Request `json:"request"`
	Result  *estimate.Result `json:"result"`
}

// ReferenceResponse lists reference rows
type ReferenceResponse struct {
	Count int                     `json:"count"`
	Rows  []estimate.ReferenceRow `json:"rows"`
}

// ReloadResponse reports the table now in service
type ReloadResponse struct {
	Rows      int `json:"rows"`
	Ambiguous int `json:"ambiguous_keys"`
}

// Health reports liveness and the size of the loaded table
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"reference_rows": h.service.Table().Len(),
	})
}

// Options returns the choices a client can offer for a request
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Catalog())
}

// CreateEstimate runs one estimate
func (h *Handler) CreateEstimate(c *gin.Context) {
	var in estimate.RequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}

	req, strategy, err := in.Build()
	if err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.service.Estimate(c.Request.Context(), req, strategy)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, EstimateResponse{Request: req, Result: res})
}

// ListReference returns the reference rows, optionally filtered by the
// document_type and tool query parameters
func (h *Handler) ListReference(c *gin.Context) {
	var docType estimate.DocumentType
	if v := c.Query("document_type"); v != "" {
		parsed, err := estimate.ParseDocumentType(v)
		if err != nil {
			h.respondError(c, errors.InvalidInput(err.Error()))
			return
		}
		docType = parsed
	}
	var tool estimate.Tool
	if v := c.Query("tool"); v != "" {
		tool = estimate.ParseTool(v)
	}

	rows := make([]estimate.ReferenceRow, 0)
	for _, r := range h.service.Table().Rows() {
		if docType != "" && r.DocumentType != docType {
			continue
		}
		if tool != "" && r.Tool != tool {
			continue
		}
		rows = append(rows, r)
	}

	c.JSON(http.StatusOK, ReferenceResponse{Count: len(rows), Rows: rows})
}

// ReferenceSummary returns hour statistics per document type and class
func (h *Handler) ReferenceSummary(c *gin.Context) {
	summary, err := h.profiler.ProfileTable(h.service.Table())
	if err != nil {
		h.respondError(c, errors.Wrap(err, "failed to profile reference table"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ReloadReference rereads the configured sources and swaps the table in
func (h *Handler) ReloadReference(c *gin.Context) {
	table, err := h.service.Reload(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("[API] reference table reloaded (%d rows)", table.Len())
	c.JSON(http.StatusOK, ReloadResponse{Rows: table.Len(), Ambiguous: len(table.DuplicateKeys())})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"code":  errors.GetCode(err),
		"error": err.Error(),
	})
}
