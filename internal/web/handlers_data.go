package web

import (
	"net/http"

	"github.com/JonMunkholm/gradebook/internal/core"
)

// TableResponse is a page of the raw parsed grid.
type TableResponse struct {
	Page
	Name      string     `json:"name"`
	Converted bool       `json:"converted"`
	Rows      [][]string `json:"rows"`
}

// RecordsResponse is a page of typed student records.
type RecordsResponse struct {
	Page
	Records []StudentView `json:"records"`
}

// StudentView is the JSON form of core.Student. Categories are rendered by
// name; an absent score is null.
type StudentView struct {
	Gender            string `json:"gender"`
	Faculty           string `json:"faculty"`
	ParentalEducation string `json:"parentalEducation"`
	Lunch             string `json:"lunch"`
	TestPrepCourse    string `json:"testPrepCourse"`
	ScoreA            *int   `json:"scoreA"`
	ScoreB            *int   `json:"scoreB"`
	ScoreC            *int   `json:"scoreC"`
}

func newStudentView(s core.Student) StudentView {
	return StudentView{
		Gender:            s.Gender.String(),
		Faculty:           s.Faculty.String(),
		ParentalEducation: s.ParentalEducation,
		Lunch:             s.Lunch.String(),
		TestPrepCourse:    s.TestPrepCourse.String(),
		ScoreA:            scorePtr(s.ScoreA),
		ScoreB:            scorePtr(s.ScoreB),
		ScoreC:            scorePtr(s.ScoreC),
	}
}

func scorePtr(s core.Score) *int {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}

// handleHealth reports liveness and load limiter status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, err := s.workspace.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": err == nil,
		"loads":  s.limiter.Status(),
	})
}

// handleTable returns a page of the raw grid, header row included.
// It works even when the snapshot could not be mapped.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	snap, err := s.workspace.Current()
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, start, end := pageBounds(r, snap.Table.Len())
	rows := make([][]string, 0, end-start)
	for _, row := range snap.Table.Rows[start:end] {
		rows = append(rows, []string(row))
	}

	writeJSON(w, http.StatusOK, TableResponse{
		Page:      page,
		Name:      snap.Name,
		Converted: snap.Converted(),
		Rows:      rows,
	})
}

// handleRecords returns a page of typed records, optionally filtered.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	ds, err := s.students(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, start, end := pageBounds(r, ds.Len())
	records := make([]StudentView, 0, end-start)
	for i := start; i < end; i++ {
		records = append(records, newStudentView(ds.At(i)))
	}

	writeJSON(w, http.StatusOK, RecordsResponse{Page: page, Records: records})
}
