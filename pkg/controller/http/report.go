package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/service/chart"
	"github.com/crashlens/crashlens/pkg/utils/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// emptyReportMessage is returned with HTTP 200 when no row matches
const emptyReportMessage = "No data found for selected filters"

// ReportHandler serves the REST reporting endpoints
type ReportHandler struct {
	reportUC interfaces.Report
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportUC interfaces.Report) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

type healthResponse struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	DataLoaded bool   `json:"data_loaded"`
}

type reportResponse struct {
	ReportID    string        `json:"report_id,omitempty"`
	Error       string        `json:"error,omitempty"`
	Charts      model.Charts  `json:"charts"`
	Summary     model.Summary `json:"summary"`
	SummaryText string        `json:"summary_text,omitempty"`
}

// HandleHealth reports whether the dataset is loaded
func (h *ReportHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	loaded := h.reportUC.Ready(r.Context())
	status := "ok"
	if !loaded {
		status = "error"
	}
	writeJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status:     status,
		Timestamp:  time.Now().Format(time.RFC3339),
		DataLoaded: loaded,
	})
}

// HandleFilters returns the selectable values of each criterion
func (h *ReportHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.reportUC.FilterOptions(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, opts)
}

// HandleReport generates a report from the JSON criteria in the body
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	var criteria model.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil && !errors.Is(err, io.EOF) {
		writeError(r.Context(), w, goerr.Wrap(err, "invalid request body",
			goerr.T(model.ErrTagInvalidCriteria)))
		return
	}

	report, err := h.reportUC.Generate(r.Context(), criteria)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if report.Empty {
		writeJSON(r.Context(), w, http.StatusOK, reportResponse{
			Error:   emptyReportMessage,
			Charts:  model.Charts{},
			Summary: report.Summary,
		})
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, reportResponse{
		ReportID:    report.ID.String(),
		Charts:      chart.Build(report),
		Summary:     report.Summary,
		SummaryText: report.Summary.Text(),
	})
}

// HandleChartImage renders one chart of the report selected by the query
// string as a PNG image
func (h *ReportHandler) HandleChartImage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".png")
	if !slices.Contains(model.ChartNames(), name) {
		writeError(r.Context(), w, goerr.New("unknown chart",
			goerr.V("name", name),
			goerr.T(model.ErrTagNotFound)))
		return
	}

	q := r.URL.Query()
	criteria := model.Criteria{
		Borough:     q.Get("borough"),
		Year:        q.Get("year"),
		Factor:      q.Get("factor"),
		Severity:    q.Get("severity"),
		SearchQuery: q.Get("search_query"),
	}

	report, err := h.reportUC.Generate(r.Context(), criteria)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	cfg, ok := chart.BuildOne(report, name)
	if !ok {
		writeError(r.Context(), w, goerr.New("chart not built",
			goerr.V("name", name),
			goerr.T(model.ErrTagNotFound)))
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, cfg); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write chart image", "error", err)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError logs err and writes an error response with the status its tag
// maps to
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	apperr.Handle(ctx, err)
	writeJSON(ctx, w, apperr.HTTPStatus(err), map[string]string{
		"error": apperr.Message(err),
	})
}
