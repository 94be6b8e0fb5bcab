// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

const maxLoggedBody = 4096

var redactedFields = map[string]struct{}{
	"password": {},
	"jwt":      {},
}

type ErrorResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Message(w http.ResponseWriter, message string) {
	OK(w, MessageResponse{Message: message})
}

func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		JSON(w, http.StatusInternalServerError, ErrorResponse{
			Status:  "error",
			Message: "Internal server error",
			Code:    CodeInternal,
		})
		return
	}

	JSON(w, appErr.StatusCode, ErrorResponse{
		Status:  "error",
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Errors,
	})
}

func NotFound(w http.ResponseWriter, message string) {
	JSONError(w, NotFoundError(message))
}

// HandleError maps any error onto the response taxonomy. Unclassified
// errors become 500s and are the only ones logged at error level.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, ErrValidation):
		slog.WarnContext(ctx, "validation failed",
			"error", err.Error(),
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", RequestIDFromContext(ctx),
		)
		JSONError(w, err)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrConflict):
		JSONError(w, err)
	default:
		SetSpanError(ctx, err)
		slog.ErrorContext(ctx, "unhandled error",
			"error", err.Error(),
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", RequestIDFromContext(ctx),
			"trace_id", TraceIDFromContext(ctx),
			"body", redactBody(RequestBodyFromContext(ctx)),
		)
		JSONError(w, err)
	}
}

func redactBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		return string(body)
	}

	for key := range fields {
		if _, ok := redactedFields[key]; ok {
			fields[key] = "[REDACTED]"
		}
	}

	return fields
}
