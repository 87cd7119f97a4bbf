package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/gradebook/internal/core"
)

// Paging defaults for /api/table and /api/records.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Page is the paging envelope for list responses.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// parseIntParam parses a non-negative integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// pageBounds reads offset and limit and clamps them to total.
// It returns the page envelope and the half-open [start, end) slice bounds.
func pageBounds(r *http.Request, total int) (Page, int, int) {
	offset := parseIntParam(r, "offset", 0)
	limit := parseIntParam(r, "limit", DefaultPageLimit)
	if limit == 0 || limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	start := min(offset, total)
	end := min(start+limit, total)
	return Page{Offset: offset, Limit: limit, Total: total}, start, end
}

// rangesParam returns the ranges given by the "buckets" query parameter
// (comma-separated low-high pairs), or the server default.
func (s *Server) rangesParam(r *http.Request) ([]core.Range, error) {
	raw := r.URL.Query().Get("buckets")
	if raw == "" {
		return s.ranges, nil
	}
	return core.ParseRanges(strings.Split(raw, ","))
}

// students returns the current Dataset narrowed by any filter parameters.
func (s *Server) students(r *http.Request) (core.Dataset, error) {
	snap, err := s.workspace.Current()
	if err != nil {
		return core.Dataset{}, err
	}
	ds, err := snap.Students()
	if err != nil {
		return core.Dataset{}, err
	}

	criteria, err := core.ParseCriteria(r.URL.Query().Get)
	if err != nil {
		return core.Dataset{}, err
	}
	return criteria.Apply(ds), nil
}
