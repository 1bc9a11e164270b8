package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drafthours/app"
	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/internal/testkit"
)

type sampleLoader struct{}

func (sampleLoader) Load(ctx context.Context) (*estimate.Table, error) {
	return testkit.SampleTable()
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError)
	svc, err := app.NewEstimationService(context.Background(), sampleLoader{}, estimate.DefaultEngineConfig(), logger)
	require.NoError(t, err)

	a, err := NewApp(Config{}, svc, logger)
	require.NoError(t, err)
	return a
}

func postForm(t *testing.T, a *App, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/estimate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	return w
}

func TestIndexRendersForm(t *testing.T) {
	a := newTestApp(t)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<form method="post" action="/estimate">`)
	assert.Contains(t, body, "PARTENDO DA SEMILAVORATO")
	assert.Contains(t, body, `value="process" checked`)
	assert.Contains(t, body, "</html>")
}

func TestEstimateRendersReport(t *testing.T) {
	w := postForm(t, newTestApp(t), url.Values{
		"strategy":         {"lookup"},
		"document_type":    {"P&ID"},
		"tool":             {"AutoCAD"},
		"revision_count":   {"1"},
		"complexity_class": {string(estimate.ComplexityDraftingStandard)},
		"duration_months":  {"6"},
		"document_count":   {"300"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="report"`)
	assert.Contains(t, body, "3720.00")
	assert.NotContains(t, body, `role="alert"`)
}

func TestEstimateParametricPID(t *testing.T) {
	w := postForm(t, newTestApp(t), url.Values{
		"strategy":           {"parametric"},
		"document_type":      {"P&ID"},
		"tool":               {"Microstation"},
		"revision_count":     {"2"},
		"duration_months":    {"3"},
		"document_count":     {"10"},
		"subtypes":           {"process", "legend"},
		"starting_condition": {"from_semi_finished"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "process, legend")
}

func TestEstimateShowsValidationError(t *testing.T) {
	w := postForm(t, newTestApp(t), url.Values{
		"document_type":   {"P&ID"},
		"tool":            {"AutoCAD"},
		"revision_count":  {"1"},
		"duration_months": {"six"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "duration_months")
}

func TestEstimateShowsLookupMiss(t *testing.T) {
	w := postForm(t, newTestApp(t), url.Values{
		"strategy":         {"lookup"},
		"document_type":    {"PFD"},
		"tool":             {"AutoCAD"},
		"revision_count":   {"5"},
		"complexity_class": {string(estimate.ComplexityPFDStandard)},
		"duration_months":  {"1"},
		"document_count":   {"1"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
}

func TestStaticAssets(t *testing.T) {
	w := httptest.NewRecorder()
	newTestApp(t).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
