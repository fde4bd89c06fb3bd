package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpCtrl "github.com/crashlens/crashlens/pkg/controller/http"
	"github.com/crashlens/crashlens/pkg/domain/model"
	"github.com/crashlens/crashlens/pkg/repository"
	"github.com/crashlens/crashlens/pkg/service/metrics"
	"github.com/crashlens/crashlens/pkg/usecase"
	"github.com/m-mizutani/gt"
)

const sampleCSV = `CRASH_DATE,CRASH_TIME,BOROUGH,NUMBER_OF_PERSONS_INJURED,NUMBER_OF_PERSONS_KILLED,CONTRIBUTING FACTOR VEHICLE 1,PERSON_TYPES
2021-03-01,8:15,BROOKLYN,0,1,Driver Inattention/Distraction,Pedestrian
2021-03-02,17:40,QUEENS,2,0,Unspecified,Occupant
2022-07-10,8:30,BROOKLYN,0,0,,
`

func newTestServer(t *testing.T, loaded bool, opts ...httpCtrl.Option) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewUnavailable(nil)
	if loaded {
		ds, err := repository.LoadCSV(ctx, "sample.csv", strings.NewReader(sampleCSV), model.ColumnsConfig{})
		gt.NoError(t, err).Required()
		repo = repository.NewMemory(ds)
	}

	opts = append([]httpCtrl.Option{httpCtrl.WithFrontend(http.Dir("testdata/spa"))}, opts...)
	srv, err := httpCtrl.NewServer(ctx, "localhost:0", usecase.NewReport(repo, nil), opts...)
	gt.NoError(t, err).Required()

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(out)).Required()
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(out)).Required()
	return resp.StatusCode
}

func TestServerHealth(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		ts := newTestServer(t, false)
		var body map[string]string
		gt.Equal(t, getJSON(t, ts.URL+"/health", &body), http.StatusOK)
		gt.Equal(t, body["status"], "healthy")
	})

	t.Run("data loaded", func(t *testing.T) {
		ts := newTestServer(t, true)
		var body map[string]any
		gt.Equal(t, getJSON(t, ts.URL+"/api/health", &body), http.StatusOK)
		gt.Equal(t, body["status"], any("ok"))
		gt.Equal(t, body["data_loaded"], any(true))
		gt.True(t, body["timestamp"] != "")
	})

	t.Run("data not loaded", func(t *testing.T) {
		ts := newTestServer(t, false)
		var body map[string]any
		gt.Equal(t, getJSON(t, ts.URL+"/api/health", &body), http.StatusOK)
		gt.Equal(t, body["status"], any("error"))
		gt.Equal(t, body["data_loaded"], any(false))
	})
}

func TestServerIndex(t *testing.T) {
	ts := newTestServer(t, true)
	var body struct {
		Name      string            `json:"name"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	gt.Equal(t, getJSON(t, ts.URL+"/api", &body), http.StatusOK)
	gt.Equal(t, body.Version, "1.0.0")
	gt.Equal(t, body.Endpoints["/api/report"], "Generate report with charts (POST)")
}

func TestServerFilters(t *testing.T) {
	t.Run("options", func(t *testing.T) {
		ts := newTestServer(t, true)
		var body model.FilterOptions
		gt.Equal(t, getJSON(t, ts.URL+"/api/filters", &body), http.StatusOK)
		gt.Equal(t, body.Boroughs, []string{"All", "BROOKLYN", "QUEENS"})
		gt.Equal(t, body.Years, []string{"All", "2021", "2022"})
		gt.Equal(t, body.Factors, []string{"All", "Driver Inattention/Distraction", "Unspecified"})
	})

	t.Run("data not loaded", func(t *testing.T) {
		ts := newTestServer(t, false)
		var body map[string]string
		gt.Equal(t, getJSON(t, ts.URL+"/api/filters", &body), http.StatusInternalServerError)
		gt.Equal(t, body, map[string]string{"error": "Data not loaded"})
	})
}

func TestServerReport(t *testing.T) {
	ts := newTestServer(t, true)

	t.Run("filtered report", func(t *testing.T) {
		var body struct {
			ReportID    string                        `json:"report_id"`
			Charts      map[string]*model.ChartConfig `json:"charts"`
			Summary     model.Summary                 `json:"summary"`
			SummaryText string                        `json:"summary_text"`
		}
		status := postJSON(t, ts.URL+"/api/report", `{"borough":"BROOKLYN","year":"All"}`, &body)
		gt.Equal(t, status, http.StatusOK)
		gt.True(t, body.ReportID != "")
		gt.Equal(t, body.Summary, model.Summary{Crashes: 2, Injured: 0, Killed: 1})
		gt.Equal(t, body.SummaryText, "Report generated on 2 crashes | Injured: 0 | Fatalities: 1")
		gt.Equal(t, len(body.Charts), 4)
		gt.Equal(t, body.Charts["severity"].ChartType, model.ChartTypePie)
	})

	t.Run("empty body means all rows", func(t *testing.T) {
		var body map[string]any
		gt.Equal(t, postJSON(t, ts.URL+"/api/report", ``, &body), http.StatusOK)
		summary := body["summary"].(map[string]any)
		gt.Equal(t, summary["crashes"], any(float64(3)))
	})

	t.Run("no match", func(t *testing.T) {
		var body map[string]any
		gt.Equal(t, postJSON(t, ts.URL+"/api/report", `{"borough":"STATEN ISLAND"}`, &body), http.StatusOK)
		gt.Equal(t, body["error"], any("No data found for selected filters"))
		gt.Equal(t, body["charts"], any(map[string]any{}))
		gt.Equal(t, body["summary"], any(map[string]any{"crashes": 0.0, "injured": 0.0, "killed": 0.0}))
		_, hasID := body["report_id"]
		gt.False(t, hasID)
	})

	t.Run("numeric year", func(t *testing.T) {
		var body struct {
			Summary model.Summary `json:"summary"`
		}
		gt.Equal(t, postJSON(t, ts.URL+"/api/report", `{"year":2021}`, &body), http.StatusOK)
		gt.Equal(t, body.Summary, model.Summary{Crashes: 2, Injured: 2, Killed: 1})
	})

	t.Run("fractional numeric year", func(t *testing.T) {
		var body map[string]string
		gt.Equal(t, postJSON(t, ts.URL+"/api/report", `{"year":2021.5}`, &body), http.StatusBadRequest)
		gt.S(t, body["error"]).Contains("year filter must be an integer")
	})

	t.Run("invalid year", func(t *testing.T) {
		var body map[string]string
		gt.Equal(t, postJSON(t, ts.URL+"/api/report", `{"year":"twenty"}`, &body), http.StatusBadRequest)
		gt.S(t, body["error"]).Contains("year filter must be an integer")
	})

	t.Run("malformed body", func(t *testing.T) {
		var body map[string]string
		gt.Equal(t, postJSON(t, ts.URL+"/api/report", `{"borough":`, &body), http.StatusBadRequest)
		gt.S(t, body["error"]).Contains("invalid request body")
	})

	t.Run("data not loaded", func(t *testing.T) {
		down := newTestServer(t, false)
		var body map[string]string
		gt.Equal(t, postJSON(t, down.URL+"/api/report", `{}`, &body), http.StatusInternalServerError)
		gt.Equal(t, body["error"], "Data not loaded")
	})

	t.Run("CORS header", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/report", "application/json", strings.NewReader(`{}`))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Equal(t, resp.Header.Get("Access-Control-Allow-Origin"), "*")
	})
}

func TestServerChartImage(t *testing.T) {
	ts := newTestServer(t, true)

	t.Run("render", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/charts/borough.png?year=2021")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		gt.Equal(t, resp.StatusCode, http.StatusOK)
		gt.Equal(t, resp.Header.Get("Content-Type"), "image/png")
		_, err = png.Decode(resp.Body)
		gt.NoError(t, err)
	})

	t.Run("placeholder for empty selection", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/charts/heatmap.png?borough=BRONX")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Equal(t, resp.StatusCode, http.StatusOK)
	})

	t.Run("unknown chart", func(t *testing.T) {
		var body map[string]string
		gt.Equal(t, getJSON(t, ts.URL+"/api/charts/radar.png", &body), http.StatusNotFound)
	})
}

func TestServerMetricsAndFrontend(t *testing.T) {
	collector := metrics.NewCollector("crashlens", nil)
	ts := newTestServer(t, true, httpCtrl.WithMetrics(collector.Handler()))

	var report map[string]any
	gt.Equal(t, postJSON(t, ts.URL+"/api/report", `{}`, &report), http.StatusOK)

	resp, err := http.Get(ts.URL + "/metrics")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	page, err := http.Get(ts.URL + "/")
	gt.NoError(t, err).Required()
	defer page.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(page.Body)
	gt.NoError(t, err)
	gt.S(t, buf.String()).Contains(`<div id="root">`)
}
