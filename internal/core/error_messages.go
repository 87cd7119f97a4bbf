package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Short row: A data row has fewer than 8 columns
//	         Action: Check the reported line; quoted commas are not supported
//	         Match: *RowError, "short row"
//
//	VAL002 - Empty file: The file has no rows at all
//	         Action: Upload a file with a header row and data rows
//	         Match: ErrEmptyFile, "empty file"
//
//	VAL003 - Malformed file: File is not recognised as a score sheet
//	         Action: Check the file is comma-separated with 8 columns
//	         Match: ErrMalformedInput, "malformed input"
//
//	VAL004 - Invalid filter: Filter value not recognised
//	         Match: ErrInvalidFilter, "invalid filter"
//
//	VAL005 - Empty required cell: A data row has an empty faculty cell
//	         Action: Fill in the faculty column on the reported line
//	         Match: *RowError with Column set, "empty cell"
//
// # Statistics Errors (STAT001-STAT099)
//
//	STAT001 - No data: Nothing to aggregate
//	          Match: ErrNoData, "no data"
//
//	STAT002 - Unknown field: Score field is not registered
//	          Match: ErrUnknownField, "unknown score field"
//
//	STAT003 - Invalid range: Bucket bounds could not be parsed
//	          Match: ErrInvalidRange, "invalid range"
//
// # Dataset Errors (DS001-DS099)
//
//	DS001 - Nothing loaded: No file has been loaded yet
//	        Match: ErrNoSnapshot, "no file loaded"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE004 - No file provided
//
// # Load Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many loads in progress
//	UPL004 - Request cancelled
//	UPL005 - Request timeout
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check application logs for the original
// technical error.
//
// # Matching
//
// Sentinel errors are checked first with errors.Is / errors.As, in the order
// of errorSentinels. Errors that crossed a process boundary as plain text
// fall back to case-insensitive substring patterns; the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoSnapshot is returned by frontends asked for data before any load.
var ErrNoSnapshot = errors.New("no file loaded")

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = errors.New("file too large")

// ErrNoFile is returned when a load request carries no file.
var ErrNoFile = errors.New("no file provided")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgShortRow = UserMessage{
		Message: "A row has fewer columns than expected",
		Action:  "Check the reported line has 8 comma-separated values; quoted commas are not supported",
		Code:    "VAL001",
	}
	msgEmptyCell = UserMessage{
		Message: "A row is missing a required value",
		Action:  "Fill in the faculty column on the reported line",
		Code:    "VAL005",
	}
	msgEmptyFile = UserMessage{
		Message: "The file is empty",
		Action:  "Please load a CSV file with a header row and data rows",
		Code:    "VAL002",
	}
	msgMalformed = UserMessage{
		Message: "File not recognised as a score sheet",
		Action:  "Ensure the file is comma-separated with 8 columns per row",
		Code:    "VAL003",
	}
	msgInvalidFilter = UserMessage{
		Message: "Filter value not recognised",
		Action:  "Use a category name such as Male, A, Standard or Completed",
		Code:    "VAL004",
	}
	msgNoData = UserMessage{
		Message: "No scores available for this calculation",
		Action:  "Load a file with at least one valid score",
		Code:    "STAT001",
	}
	msgUnknownField = UserMessage{
		Message: "Unknown score field",
		Action:  "Use one of: charms, potions, dark_arts",
		Code:    "STAT002",
	}
	msgInvalidRange = UserMessage{
		Message: "Invalid score range",
		Action:  "Write ranges as low-high, for example 0-20",
		Code:    "STAT003",
	}
	msgNoSnapshot = UserMessage{
		Message: "No file has been loaded",
		Action:  "Load a CSV file first",
		Code:    "DS001",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds maximum size limit",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file to load",
		Code:    "FILE004",
	}
	msgBusy = UserMessage{
		Message: "Too many loads in progress",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
	}
)

// errorSentinels is checked before the text patterns.
// ErrEmptyFile must precede ErrMalformedInput since it wraps it.
var errorSentinels = []struct {
	target error
	msg    UserMessage
}{
	{ErrEmptyFile, msgEmptyFile},
	{ErrInvalidFilter, msgInvalidFilter},
	{ErrNoData, msgNoData},
	{ErrUnknownField, msgUnknownField},
	{ErrInvalidRange, msgInvalidRange},
	{ErrNoSnapshot, msgNoSnapshot},
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrNoFile, msgNoFile},
	{ErrTooManyLoads, msgBusy},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// More specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{pattern: "short row", msg: msgShortRow},
	{pattern: "empty cell", msg: msgEmptyCell},
	{pattern: "empty file", msg: msgEmptyFile},
	{pattern: "malformed input", msg: msgMalformed},
	{pattern: "invalid filter", msg: msgInvalidFilter},
	{pattern: "no data", msg: msgNoData},
	{pattern: "unknown score field", msg: msgUnknownField},
	{pattern: "invalid range", msg: msgInvalidRange},
	{pattern: "no file loaded", msg: msgNoSnapshot},
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "no file provided", msg: msgNoFile},
	{pattern: "too many concurrent loads", msg: msgBusy},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "context deadline exceeded", msg: msgTimeout},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
//
// Example:
//
//	_, err := core.Map(table)
//	msg := core.MapError(err)
//	// msg.Code == "VAL001" for a short row
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var rowErr *RowError
	if errors.As(err, &rowErr) {
		if !rowErr.Short() {
			return msgEmptyCell
		}
		return msgShortRow
	}
	for _, s := range errorSentinels {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}
	if errors.Is(err, ErrMalformedInput) {
		return msgMalformed
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
