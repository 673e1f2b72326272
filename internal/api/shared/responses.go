package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/qasetech/ledger-api/internal/redact"
)

// Envelope is the uniform JSON response shape. Successful responses carry
// status "success" and optionally a data payload; failures carry status
// "fail" and a message only.
type Envelope struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithSuccess writes a success envelope with the given status code,
// message and payload.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, status int, msg string, data any) {
	RespondWithJSON(w, r, status, Envelope{
		Status: "success",
		Msg:    msg,
		Data:   data,
	})
}

// RespondWithError writes a failure envelope with the given status code and
// message. The trace ID from the request context is logged for correlation
// but never serialized.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", msg,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{
		Status: "fail",
		Msg:    msg,
	})
}

// RespondWithErrorAndLog writes a failure envelope and also logs the
// underlying error. The client only ever sees the sanitized message; the
// redacted error detail goes to the logs.
//
// Log level strategy: 5xx at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{
		Status: "fail",
		Msg:    userMessage,
	})
}
