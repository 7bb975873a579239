package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// * Error references shared across packages
const (
	RefNotFound       = "NOT_FOUND"
	RefRateLimited    = "RATE_LIMITED"
	RefUpstream       = "UPSTREAM_ERROR"
	RefInvalidRequest = "INVALID_REQUEST"
	RefConfigMissing  = "CONFIG_MISSING"
	RefAnalysisFailed = "ANALYSIS_FAILED"
	RefGeneration     = "GENERATION_FAILED"
	RefPublishFailed  = "PUBLISH_FAILED"
)

var referenceStatus = map[string]int{
	RefNotFound:       http.StatusNotFound,
	RefRateLimited:    http.StatusTooManyRequests,
	RefUpstream:       http.StatusBadGateway,
	RefInvalidRequest: http.StatusBadRequest,
	RefConfigMissing:  http.StatusServiceUnavailable,
	RefGeneration:     http.StatusBadGateway,
	RefPublishFailed:  http.StatusBadGateway,
}

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	RootCause   error
	Level       ErrorLevel
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(3),
	}
}

func Wrap(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return New(ref, title, detail, cause, level)
}

// * HasReference reports whether any ApplicationError in the chain carries ref
func HasReference(err error, ref string) bool {
	for err != nil {
		var appErr *ApplicationError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Reference == ref {
			return true
		}
		err = appErr.RootCause
	}
	return false
}

func IsNotFound(err error) bool    { return HasReference(err, RefNotFound) }
func IsRateLimited(err error) bool { return HasReference(err, RefRateLimited) }

func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

type HTTPErrorResponse struct {
	Status     int       `json:"status"`
	ErrorRef   string    `json:"error_reference,omitempty"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// * StatusFor returns the HTTP status an error should be reported with
func StatusFor(err error) int {
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	// * The outermost error with a known reference wins
	for e := error(appErr); e != nil; {
		var cur *ApplicationError
		if !errors.As(e, &cur) {
			break
		}
		if status, ok := referenceStatus[cur.Reference]; ok {
			return status
		}
		e = cur.RootCause
	}

	switch appErr.Level {
	case LevelError:
		return http.StatusBadRequest
	case LevelWarning:
		return http.StatusConflict
	case LevelInfo:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    StatusFor(err),
		Title:     "An unexpected error occurred",
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
		resp.Detail = appErr.Detail

		switch {
		case resp.Status == http.StatusTooManyRequests:
			resp.Resolution = "GitHub rate limit reached, retry after the limit resets"
		case resp.Status >= http.StatusInternalServerError:
			resp.Resolution = "Please contact support with the error reference"
		case appErr.Level == LevelWarning:
			resp.Resolution = "Please review your request and try again"
		}
	} else {
		resp.Detail = err.Error()
	}

	logger.Error("%v", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
