// Package http exposes the roster service over a chi router. Handlers are
// thin: decode the request, call the service, render the result. Owner
// identity comes from a header; authentication itself is outside this
// service.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "rostercli/internal/errors"
	"rostercli/pkg/contracts/domain"
)

// OwnerHeader carries the owner identity for every roster request.
const OwnerHeader = "X-Owner-ID"

type contextKey string

const ownerContextKey contextKey = "owner_id"

// RosterHandler handles roster profile HTTP requests.
type RosterHandler struct {
	service      RosterServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRosterHandler creates a roster handler.
func NewRosterHandler(service RosterServiceInterface, logger *slog.Logger) *RosterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "roster_handler")),
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// Routes returns the roster routes.
func (h *RosterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(h.OwnerCtx)

	r.Get("/", h.ListProfiles)
	r.Post("/", h.CreateProfile)
	r.Post("/bulk", h.BulkCreateProfiles)
	r.Post("/import", h.ImportFile)
	r.Post("/stats", h.SelectionStats)
	r.Get("/export", h.ExportProfiles)
	r.Delete("/clear/all", h.DeleteAllProfiles)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
		r.Patch("/status", h.UpdateProfileStatus)
		r.Delete("/", h.DeleteProfile)
	})

	return r
}

// OwnerCtx requires the owner header and stores it in the request context.
func (h *RosterHandler) OwnerCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			h.errorHandler.HandleError(w, r, apierrors.NewValidationError(OwnerHeader+" header is required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerContextKey, owner)))
	})
}

func ownerID(r *http.Request) string {
	owner, _ := r.Context().Value(ownerContextKey).(string)
	return owner
}

// ListProfiles handles GET /
func (h *RosterHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context(), ownerID(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, profiles)
}

// GetProfile handles GET /{id}
func (h *RosterHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// CreateProfile handles POST /
func (h *RosterHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var payload domain.Profile
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("invalid profile payload"))
		return
	}
	profile, err := h.service.Create(r.Context(), ownerID(r), payload)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, profile)
}

// BulkCreateProfiles handles POST /bulk
func (h *RosterHandler) BulkCreateProfiles(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Profiles []domain.Profile `json:"profiles"`
	}
	if err := render.DecodeJSON(r.Body, &payload); err != nil || len(payload.Profiles) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("invalid profiles array"))
		return
	}
	if err := h.service.BulkCreate(r.Context(), ownerID(r), payload.Profiles); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]int{"created": len(payload.Profiles)})
}

// ImportFile handles POST /import with a multipart "file" field.
func (h *RosterHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("missing file upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewParsingError("failed to read upload", err))
		return
	}

	h.logger.InfoContext(r.Context(), "import upload received",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	profiles, err := h.service.ImportFile(r.Context(), ownerID(r), header.Filename, data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, profiles)
}

// SelectionStats handles POST /stats with {"selected_ids": [...]}.
func (h *RosterHandler) SelectionStats(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SelectedIDs []string `json:"selected_ids"`
	}
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("invalid selection payload"))
		return
	}
	stats, err := h.service.SelectionStats(r.Context(), ownerID(r), payload.SelectedIDs)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// ExportProfiles handles GET /export?format=csv|xlsx
func (h *RosterHandler) ExportProfiles(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	contentType := "text/csv"
	switch format {
	case "csv":
	case "xlsx", "excel":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError(fmt.Sprintf("unsupported export format: %q", format)))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=roster_profiles.%s", format))

	if err := h.service.Export(r.Context(), ownerID(r), format, w); err != nil {
		h.errorHandler.HandleError(w, r, err)
	}
}

// UpdateProfile handles PUT /{id}
func (h *RosterHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload domain.Profile
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("invalid profile payload"))
		return
	}
	payload.ID = chi.URLParam(r, "id")
	profile, err := h.service.Update(r.Context(), ownerID(r), payload)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// UpdateProfileStatus handles PATCH /{id}/status with {"status": "..."}.
func (h *RosterHandler) UpdateProfileStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status domain.Status `json:"status"`
	}
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("invalid status payload"))
		return
	}
	profile, err := h.service.UpdateStatus(r.Context(), ownerID(r), chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, profile)
}

// DeleteProfile handles DELETE /{id}
func (h *RosterHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"message": "profile deleted"})
}

// DeleteAllProfiles handles DELETE /clear/all
func (h *RosterHandler) DeleteAllProfiles(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context(), ownerID(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]int64{"deleted": count})
}
