package web

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/gradebook/internal/core"
	"github.com/JonMunkholm/gradebook/internal/logging"
)

// LoadResponse describes the snapshot created by POST /api/load.
type LoadResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	LoadedAt  time.Time      `json:"loadedAt"`
	Rows      int            `json:"rows"`
	Students  int            `json:"students"`
	Converted bool           `json:"converted"`
	Skipped   []SkippedRow   `json:"skipped,omitempty"`
	Error     *ErrorResponse `json:"error,omitempty"` // Set when mapping failed
}

// SkippedRow is a row dropped in lenient mode. Column is set when the row
// was dropped for an empty required cell rather than for being short.
type SkippedRow struct {
	Line   int    `json:"line"`
	Cells  int    `json:"cells"`
	Column string `json:"column,omitempty"`
}

// handleLoad reads a CSV file, maps it and installs it as the current
// snapshot. The file is taken from the multipart field "file" or, for any
// other content type, from the raw request body ("name" query parameter
// names it). A file that parses but cannot be mapped is still installed
// so its raw table can be inspected; the response reports converted=false.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	maxSize := s.cfg.Load.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	name, data, err := readUpload(r, maxSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	snap := core.NewSnapshot(name, core.Parse(string(data)), s.loadOptions(r))
	s.workspace.Replace(snap)

	logger := logging.WithFields(r.Context(), "snapshot_id", snap.ID, "file", snap.Name)
	for _, rowErr := range snap.Skipped {
		logger.Warn("row skipped", "line", rowErr.Line, "cells", rowErr.Cells, "column", rowErr.Column)
	}
	if snap.MapErr != nil {
		logger.Warn("file loaded without conversion", "rows", snap.Table.Len(), "error", snap.MapErr)
	} else {
		logger.Info("file loaded", "rows", snap.Table.Len(), "students", snap.Dataset.Len())
	}

	writeJSON(w, http.StatusCreated, newLoadResponse(snap))
}

// loadOptions applies the "lenient" query parameter over the configured default.
func (s *Server) loadOptions(r *http.Request) core.MapOptions {
	opts := s.cfg.Mapping.MapOptions()
	switch strings.ToLower(r.URL.Query().Get("lenient")) {
	case "true", "1", "yes":
		opts.Lenient = true
	case "false", "0", "no":
		opts.Lenient = false
	}
	return opts
}

// readUpload returns the file name and contents of the request.
func readUpload(r *http.Request, maxSize int64) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		name = r.URL.Query().Get("name")
		src  io.Reader
	)
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			return "", nil, uploadError(err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, core.ErrNoFile
		}
		defer file.Close()
		name, src = header.Filename, file
	} else {
		src = r.Body
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", nil, uploadError(err)
	}
	if len(data) == 0 {
		return "", nil, core.ErrNoFile
	}
	if name == "" {
		name = "upload.csv"
	}
	return name, data, nil
}

// uploadError translates body size failures into core.ErrFileTooLarge.
func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return core.ErrFileTooLarge
	}
	return err
}

func newLoadResponse(snap *core.Snapshot) LoadResponse {
	resp := LoadResponse{
		ID:        snap.ID,
		Name:      snap.Name,
		LoadedAt:  snap.LoadedAt,
		Rows:      snap.Table.Len(),
		Students:  snap.Dataset.Len(),
		Converted: snap.Converted(),
	}
	for _, rowErr := range snap.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedRow{Line: rowErr.Line, Cells: rowErr.Cells, Column: rowErr.Column})
	}
	if snap.MapErr != nil {
		msg := core.MapError(snap.MapErr)
		resp.Error = &ErrorResponse{
			Error:   snap.MapErr.Error(),
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		}
	}
	return resp
}
