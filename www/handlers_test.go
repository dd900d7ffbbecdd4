package www

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angas/pv-revenue-go/config"
	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/hours"
	"github.com/angas/pv-revenue-go/refdata"
	"github.com/angas/pv-revenue-go/report"
	"github.com/angas/pv-revenue-go/types"
	"github.com/angas/pv-revenue-go/www/chartjs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dailyPrices(year int, toMonth time.Month, spot float64) []types.PricePoint {
	var points []types.PricePoint
	for m := time.January; m <= toMonth; m++ {
		last := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
		for d := 1; d <= last; d++ {
			points = append(points, types.PricePoint{
				Hour:               hours.DateHour{Date: fmt.Sprintf("%04d-%02d-%02d", year, m, d), Hour: 12},
				Spot:               spot,
				MarketValueMonthly: 4.0,
				MarketValueYearly:  5.0,
				ReferenceValue:     6.72,
			})
		}
	}
	return points
}

func dailyProduction(year int, yield float64) []types.ProductionPoint {
	var points []types.ProductionPoint
	for m := time.January; m <= time.December; m++ {
		last := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
		for d := 1; d <= last; d++ {
			points = append(points, types.ProductionPoint{
				Hour:  hours.DateHour{Date: fmt.Sprintf("%04d-%02d-%02d", year, m, d), Hour: 12},
				Yield: yield,
			})
		}
	}
	return points
}

func testServer(t *testing.T, projects ...types.Project) *Server {
	t.Helper()

	logger := discardLogger()
	tm, err := NewTemplateManager(logger, nil)
	if err != nil {
		t.Fatalf("template manager: %v", err)
	}

	ref := refdata.NewReference(map[int][]types.PricePoint{
		2024: dailyPrices(2024, time.December, 6.0),
		2025: dailyPrices(2025, time.September, 7.0),
	}, 6.72)

	return &Server{
		logger:   logger,
		config:   config.AppConfigServer{SessionSecret: "test"},
		projects: dataset.NewStore(projects),
		builder:  report.NewBuilder(logger, ref, 2025),
		sessions: newSessionStore("test"),
		tm:       tm,
	}
}

func TestResultsHandler(t *testing.T) {
	s := testServer(t, types.Project{Name: "Dach Süd", Series: dailyProduction(2024, 1)})
	handler := NewResultsHandler(s.logger, s.projects, s.builder, s.tm)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/results", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dach Süd") {
		t.Errorf("expected project name in body")
	}
	if !strings.Contains(body, "2024") || !strings.Contains(body, report.ForecastLabel) {
		t.Errorf("expected 2024 and forecast columns in body")
	}
	if !strings.Contains(body, "6.00") {
		t.Errorf("expected the 2024 specific spot revenue in body")
	}
}

func TestResultsHandlerWithoutProjects(t *testing.T) {
	s := testServer(t)
	handler := NewResultsHandler(s.logger, s.projects, s.builder, s.tm)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/results", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Keine Ergebnisse") {
		t.Errorf("expected the no-results notice")
	}
}

func TestChartHandler(t *testing.T) {
	s := testServer(t, types.Project{Name: "Dach Süd", Series: dailyProduction(2024, 1)})
	handler := NewChartHandler(s.logger, s.projects, s.builder)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/chart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var charts []chartjs.Chart
	if err := json.NewDecoder(rec.Body).Decode(&charts); err != nil {
		t.Fatalf("decoding chart json: %v", err)
	}
	if len(charts) != 1 {
		t.Fatalf("expected 1 chart, got %d", len(charts))
	}
	chart := charts[0]
	if chart.Type != "bar" {
		t.Errorf("expected bar chart, got %q", chart.Type)
	}
	if len(chart.Data.Labels) != 2 { // 2024 and Forecast
		t.Errorf("expected 2 column labels, got %v", chart.Data.Labels)
	}
	if len(chart.Data.Datasets) != 3 { // one project, three models
		t.Errorf("expected 3 datasets, got %d", len(chart.Data.Datasets))
	}
}

func TestMonthlyHandler(t *testing.T) {
	s := testServer(t,
		types.Project{Name: "Acker Ost", Series: dailyProduction(2024, 2)},
		types.Project{Name: "Dach Süd", Series: dailyProduction(2024, 1)})
	handler := NewMonthlyHandler(s.logger, s.projects, s.builder, s.tm, s)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/monthly?project=Dach+Süd", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Januar") || !strings.Contains(body, "Dezember") {
		t.Errorf("expected all months in body")
	}
	if !strings.Contains(body, `value="Dach Süd" selected`) {
		t.Errorf("expected Dach Süd selected in the dropdown")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Errorf("expected the selection session cookie")
	}
}

func TestMonthlyHandlerStaleSelection(t *testing.T) {
	s := testServer(t, types.Project{Name: "Dach Süd", Series: dailyProduction(2024, 1)})
	handler := NewMonthlyHandler(s.logger, s.projects, s.builder, s.tm, s)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/monthly?project=Gone", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="Dach Süd" selected`) {
		t.Errorf("stale selection expected fallback to the first project")
	}
}

func TestUploadHandlerRejectsNonXLSX(t *testing.T) {
	s := testServer(t)
	handler := NewUploadHandler(s.logger, s.projects, s)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "garbage.xlsx")
	fw.Write([]byte("this is not a workbook"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if s.projects.Len() != 0 {
		t.Errorf("rejected upload must not be stored")
	}
}

func TestUploadHandlerMethodNotAllowed(t *testing.T) {
	s := testServer(t)
	handler := NewUploadHandler(s.logger, s.projects, s)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
