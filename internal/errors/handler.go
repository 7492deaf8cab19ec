package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Problem is the JSON body returned for failed requests.
type Problem struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Detail  string `json:"detail"`
	TraceID string `json:"trace_id,omitempty"`
}

// Render implements render.Renderer.
func (p *Problem) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, p.Status)
	return nil
}

// ErrorHandler converts application errors to HTTP responses with consistent
// JSON bodies and logs them with request context.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError logs err and writes the mapped HTTP response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	status := http.StatusInternalServerError
	errType := "INTERNAL"
	detail := "an unexpected error occurred"

	var appErr *AppError
	if errors.As(err, &appErr) {
		errType = string(appErr.Type)
		detail = appErr.Message
		switch appErr.Type {
		case ErrTypeValidation, ErrTypeParsing:
			status = http.StatusBadRequest
		case ErrTypeNotFound:
			status = http.StatusNotFound
		case ErrTypeStorage, ErrTypeConfig:
			status = http.StatusInternalServerError
		}
	}

	render.Render(w, r, &Problem{
		Status:  status,
		Type:    errType,
		Detail:  detail,
		TraceID: reqID,
	})
}
