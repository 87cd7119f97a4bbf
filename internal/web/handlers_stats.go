package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/gradebook/internal/chart"
	"github.com/JonMunkholm/gradebook/internal/core"
	"github.com/JonMunkholm/gradebook/internal/logging"
	"github.com/JonMunkholm/gradebook/internal/report"
)

// AverageView is one entry of GET /api/averages. Mean is null when the
// field has no valid scores.
type AverageView struct {
	Field string   `json:"field"`
	Label string   `json:"label"`
	Mean  *float64 `json:"mean"`
}

// SummaryResponse is the body of GET /api/summary/{field}.
type SummaryResponse struct {
	Field string `json:"field"`
	Label string `json:"label"`
	core.Summary
}

// CorrelationResponse is the body of GET /api/correlation.
type CorrelationResponse struct {
	A           string  `json:"a"`
	B           string  `json:"b"`
	Correlation float64 `json:"correlation"`
}

func (s *Server) handleAverages(w http.ResponseWriter, r *http.Request) {
	ds, err := s.students(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	averages := core.Averages(ds)
	result := make([]AverageView, len(averages))
	for i, avg := range averages {
		result[i] = AverageView{Field: avg.Field.Key, Label: avg.Field.Label}
		if avg.OK {
			mean := avg.Mean
			result[i].Mean = &mean
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// handleHistograms returns one histogram per score field.
func (s *Server) handleHistograms(w http.ResponseWriter, r *http.Request) {
	ds, ranges, ok := s.histogramInput(w, r)
	if !ok {
		return
	}

	hists, err := chart.BuildAll(ds, ranges)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hists)
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	field, err := core.LookupField(chi.URLParam(r, "field"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	ds, ranges, ok := s.histogramInput(w, r)
	if !ok {
		return
	}

	h, err := chart.Build(ds, field, ranges)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// histogramInput resolves the dataset and ranges shared by the histogram
// endpoints. On failure the error response is already written.
func (s *Server) histogramInput(w http.ResponseWriter, r *http.Request) (core.Dataset, []core.Range, bool) {
	ds, err := s.students(r)
	if err != nil {
		respondError(w, r, err)
		return core.Dataset{}, nil, false
	}
	ranges, err := s.rangesParam(r)
	if err != nil {
		respondError(w, r, err)
		return core.Dataset{}, nil, false
	}
	return ds, ranges, true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	field, err := core.LookupField(chi.URLParam(r, "field"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	ds, err := s.students(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	sum, err := core.Summarize(ds, field.Select)
	if err != nil && !errors.Is(err, core.ErrNoData) {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Field: field.Key, Label: field.Label, Summary: sum})
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := core.LookupField(q.Get("a"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	b, err := core.LookupField(q.Get("b"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	ds, err := s.students(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	corr, err := core.Correlation(ds, a.Select, b.Select)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CorrelationResponse{A: a.Key, B: b.Key, Correlation: corr})
}

// handleReport streams the XLSX workbook for the current (filtered) dataset.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ds, ranges, ok := s.histogramInput(w, r)
	if !ok {
		return
	}

	f, err := report.Build(ds, ranges)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "gradebook-report.xlsx"))
	if err := f.Write(w); err != nil {
		logging.FromContext(r.Context()).Error("report write failed", "error", err)
	}
}
