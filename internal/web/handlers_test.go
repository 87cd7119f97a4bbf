package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/gradebook/internal/chart"
	"github.com/JonMunkholm/gradebook/internal/config"
	"github.com/JonMunkholm/gradebook/internal/core"
)

const sampleCSV = "gender,faculty,parental,lunch,prep,charms,potions,dark_arts\n" +
	"female,group B,bachelor's degree,standard,none,72,72,74\n" +
	"female,group C,some college,standard,completed,69,90,88\n" +
	"male,group A,associate's degree,free/reduced,none,47,57,x\n" +
	"male,group C,some college,standard,none,76,78,75"

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{RequestTimeout: 5 * time.Second},
		Load:      config.LoadConfig{MaxFileSize: 1024, MaxConcurrent: 2, MaxWaitTime: time.Second},
		Histogram: config.HistogramConfig{Buckets: []string{"0-20", "21-40", "41-60", "61-80", "81-100"}},
		Logging:   config.LoggingConfig{Level: "error", Format: "text"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(testConfig())
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func loadCSV(t *testing.T, s *Server, csv string) LoadResponse {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/load?name=scores.csv", []byte(csv), "text/csv")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp LoadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":false`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestLoad_RawBody(t *testing.T) {
	s := newTestServer(t)

	resp := loadCSV(t, s, sampleCSV)
	assert.Equal(t, "scores.csv", resp.Name)
	assert.Equal(t, 5, resp.Rows)
	assert.Equal(t, 4, resp.Students)
	assert.True(t, resp.Converted)
	assert.Nil(t, resp.Error)

	snap, err := s.Workspace().Current()
	require.NoError(t, err)
	assert.Equal(t, resp.ID, snap.ID)
}

func TestLoad_Multipart(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "class.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := do(t, s, http.MethodPost, "/api/load", body.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp LoadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "class.csv", resp.Name)
	assert.Equal(t, 4, resp.Students)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		wantCode string
		status   int
	}{
		{"empty body", nil, "FILE004", http.StatusBadRequest},
		{"too large", bytes.Repeat([]byte("a"), 2048), "FILE001", http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := do(t, s, http.MethodPost, "/api/load", tt.body, "text/csv")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)

			_, err := s.Workspace().Current()
			assert.Error(t, err, "failed load must not install a snapshot")
		})
	}
}

func TestLoad_ShortRowKeepsRawTable(t *testing.T) {
	s := newTestServer(t)

	resp := loadCSV(t, s, "h1,h2\nmale,group A,x,standard,none,1,2\n")
	assert.False(t, resp.Converted)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VAL001", resp.Error.Code)

	rec := do(t, s, http.MethodGet, "/api/table", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var table TableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.False(t, table.Converted)
	assert.Equal(t, 3, table.Total)
	assert.Equal(t, []string{"h1", "h2"}, table.Rows[0])

	rec = do(t, s, http.MethodGet, "/api/averages", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VAL001", decodeError(t, rec).Code)
}

func TestLoad_Lenient(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/load?lenient=true",
		[]byte("h\nfemale,group B,x,standard,none,72,72,74\nshort,row\nmale,,x,standard,none,1,2,3\n"), "text/csv")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp LoadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Converted)
	assert.Equal(t, 1, resp.Students)
	assert.Equal(t, []SkippedRow{
		{Line: 3, Cells: 2},
		{Line: 4, Cells: 8, Column: "faculty"},
		{Line: 5, Cells: 1},
	}, resp.Skipped)
}

func TestLoad_EmptyFaculty(t *testing.T) {
	s := newTestServer(t)

	resp := loadCSV(t, s, "h\nmale,,hs,standard,none,1,2,3")
	assert.False(t, resp.Converted)
	assert.Zero(t, resp.Students)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VAL005", resp.Error.Code)

	rec := do(t, s, http.MethodGet, "/api/records", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VAL005", decodeError(t, rec).Code)
}

func TestLoad_Busy(t *testing.T) {
	cfg := testConfig()
	cfg.Load.MaxConcurrent = 1
	cfg.Load.MaxWaitTime = 20 * time.Millisecond
	s, err := NewServer(cfg)
	require.NoError(t, err)

	require.NoError(t, s.limiter.Acquire(context.Background()))

	rec := do(t, s, http.MethodPost, "/api/load", []byte(sampleCSV), "text/csv")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UPL002", decodeError(t, rec).Code)

	_, err = s.Workspace().Current()
	assert.ErrorIs(t, err, core.ErrNoSnapshot, "rejected load must not replace the snapshot")

	s.limiter.Release()
	loadCSV(t, s, sampleCSV)
}

func TestNothingLoaded(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/table", "/api/records", "/api/averages", "/api/histograms", "/api/summary/charms"} {
		rec := do(t, s, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusConflict, rec.Code, path)
		assert.Equal(t, "DS001", decodeError(t, rec).Code, path)
	}
}

func TestRecords_PagingAndFilter(t *testing.T) {
	s := newTestServer(t)
	loadCSV(t, s, sampleCSV)

	rec := do(t, s, http.MethodGet, "/api/records?offset=1&limit=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page RecordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "C", page.Records[0].Faculty)
	assert.Equal(t, "FreeReduced", page.Records[1].Lunch)
	assert.Nil(t, page.Records[1].ScoreC)

	rec = do(t, s, http.MethodGet, "/api/records?gender=male", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)

	rec = do(t, s, http.MethodGet, "/api/records?gender=robot", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VAL004", decodeError(t, rec).Code)
}

func TestAverages(t *testing.T) {
	s := newTestServer(t)
	loadCSV(t, s, sampleCSV)

	rec := do(t, s, http.MethodGet, "/api/averages", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var avgs []AverageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &avgs))
	require.Len(t, avgs, 3)
	assert.Equal(t, "charms", avgs[0].Field)
	require.NotNil(t, avgs[0].Mean)
	assert.InDelta(t, 66.0, *avgs[0].Mean, 1e-9)
	require.NotNil(t, avgs[2].Mean)
	assert.InDelta(t, 79.0, *avgs[2].Mean, 1e-9)
}

func TestHistogram(t *testing.T) {
	s := newTestServer(t)
	loadCSV(t, s, sampleCSV)

	rec := do(t, s, http.MethodGet, "/api/histograms/charms", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var h chart.Histogram
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "Charms Score", h.Title)
	assert.Equal(t, []float64{0, 0, 0.25, 0.75, 0}, h.Rates)
	assert.Equal(t, 4.0, h.AxisMax)

	rec = do(t, s, http.MethodGet, "/api/histograms/charms?buckets=0-49,50-100", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, []string{"0..49", "50..100"}, h.Labels)
	assert.Equal(t, []float64{0.25, 0.75}, h.Rates)

	rec = do(t, s, http.MethodGet, "/api/histograms/charms?faculty=E", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.True(t, h.Empty)

	rec = do(t, s, http.MethodGet, "/api/histograms/herbology", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/histograms/charms?buckets=9-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "STAT003", decodeError(t, rec).Code)
}

func TestHistograms_All(t *testing.T) {
	s := newTestServer(t)
	loadCSV(t, s, sampleCSV)

	rec := do(t, s, http.MethodGet, "/api/histograms", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var hists []chart.Histogram
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hists))
	require.Len(t, hists, 3)
	assert.Equal(t, "dark_arts", hists[2].Field)
}

func TestSummaryAndCorrelation(t *testing.T) {
	s := newTestServer(t)
	loadCSV(t, s, sampleCSV)

	rec := do(t, s, http.MethodGet, "/api/summary/dark_arts", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sum SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 1, sum.Absent)
	assert.Equal(t, 74.0, sum.Min)
	assert.Equal(t, 88.0, sum.Max)

	rec = do(t, s, http.MethodGet, "/api/correlation?a=charms&b=potions", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var corr CorrelationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corr))
	assert.True(t, corr.Correlation >= -1 && corr.Correlation <= 1)

	rec = do(t, s, http.MethodGet, "/api/correlation?a=charms&b=potions&faculty=B", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "STAT001", decodeError(t, rec).Code)
}

func TestReport(t *testing.T) {
	s := newTestServer(t)
	loadCSV(t, s, sampleCSV)

	rec := do(t, s, http.MethodGet, "/api/report.xlsx", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Students")
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"secret"}}
	s, err := NewServer(cfg)
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/api/table", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"VAL001", http.StatusUnprocessableEntity},
		{"VAL004", http.StatusBadRequest},
		{"STAT001", http.StatusUnprocessableEntity},
		{"STAT002", http.StatusNotFound},
		{"DS001", http.StatusConflict},
		{"FILE004", http.StatusBadRequest},
		{"UPL002", http.StatusServiceUnavailable},
		{"ERR000", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.code), tt.code)
	}
}
