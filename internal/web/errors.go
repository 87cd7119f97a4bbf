package web

// errors.go turns errors into JSON responses.
//
// Every error goes through core.MapError, so the client sees the friendly
// message and code while the log keeps the technical error. The HTTP status
// follows from the code prefix.

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/gradebook/internal/core"
	"github.com/JonMunkholm/gradebook/internal/logging"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes its mapped message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(msg.Code)

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request error", "path", r.URL.Path, "status", status, "code", msg.Code, "error", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "status", status, "code", msg.Code, "error", err)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   err.Error(),
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// statusFor maps a MapError code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case "FILE001":
		return http.StatusRequestEntityTooLarge
	case "UPL002":
		return http.StatusServiceUnavailable
	case "UPL004":
		return 499
	case "UPL005":
		return http.StatusGatewayTimeout
	case "DS001":
		return http.StatusConflict
	case "STAT002":
		return http.StatusNotFound
	case "VAL004", "STAT003":
		return http.StatusBadRequest
	}

	switch {
	case strings.HasPrefix(code, "FILE"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "VAL"), strings.HasPrefix(code, "STAT"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
