package event_api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventboard/internal/auth"
	"eventboard/internal/events"
	"eventboard/internal/logger"
	"eventboard/internal/models"
	"eventboard/internal/utils"
)

// maxUploadBytes caps the in-memory part of a multipart submission.
const maxUploadBytes = 10 << 20

type EventService interface {
	CreateEvent(ctx context.Context, callerID string, in models.EventInput, image *models.ImageUpload) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, callerID, id string, in models.EventInput, image *models.ImageUpload) (*models.Event, error)
	DeleteEvent(ctx context.Context, callerID, id string) error
	ListEventsByOwner(ctx context.Context, ownerID string) ([]models.Event, error)
}

type CatalogService interface {
	List(ctx context.Context, filterType string) ([]models.Event, error)
}

type ShareQR interface {
	EventShareQR(eventID string) ([]byte, error)
}

type Handler struct {
	EventService EventService
	Catalog      CatalogService
	QR           ShareQR
	Logger       *logger.Logger
}

// CreateEvent handles POST /api/events. Accepts JSON or multipart (for image
// uploads). The owner is always the verified token subject.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	input, image, err := decodeSubmission(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	event, err := h.EventService.CreateEvent(r.Context(), auth.UserID(r.Context()), input, image)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Event created successfully", event))
}

// GetEvent handles GET /api/events/{eventId}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	event, err := h.EventService.GetEvent(r.Context(), eventID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Event retrieved successfully", event))
}

// UpdateEvent handles PUT /api/events/{eventId}. The whole form is
// re-submitted and re-validated; when no new image is attached the existing
// image URL is kept.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	input, image, err := decodeSubmission(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	event, err := h.EventService.UpdateEvent(r.Context(), auth.UserID(r.Context()), eventID, input, image)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Event updated successfully", event))
}

// DeleteEvent handles DELETE /api/events/{eventId}. Deletion is permanent.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if err := h.EventService.DeleteEvent(r.Context(), auth.UserID(r.Context()), eventID); err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Event deleted successfully", nil))
}

// ListEvents handles GET /api/events?type=. Without a type (or with the
// "All Events" sentinel) the full catalog comes back, ascending by start
// date.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filterType := r.URL.Query().Get("type")

	listings, err := h.Catalog.List(r.Context(), filterType)
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Events retrieved successfully", listings))
}

// MyEvents handles GET /api/my/events: the caller's own listings.
func (h *Handler) MyEvents(w http.ResponseWriter, r *http.Request) {
	listings, err := h.EventService.ListEventsByOwner(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Events retrieved successfully", listings))
}

// EventShareQR handles GET /api/events/{eventId}/qr with a PNG pointing at
// the event's public detail page.
func (h *Handler) EventShareQR(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if _, err := h.EventService.GetEvent(r.Context(), eventID); err != nil {
		h.writeError(w, err)
		return
	}

	png, err := h.QR.EventShareQR(eventID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil && h.Logger != nil {
		h.Logger.Error("HTTP", fmt.Sprintf("Failed to write QR response: %v", err))
	}
}

// decodeSubmission reads a create/edit payload from JSON or multipart form
// data. Legacy clients still sending the single date+time pair are adapted
// onto the canonical window shape.
func decodeSubmission(r *http.Request) (models.EventInput, *models.ImageUpload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(r)
	}

	var payload struct {
		models.EventInput
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return models.EventInput{}, nil, fmt.Errorf("malformed JSON: %w", err)
	}

	input := payload.EventInput
	if input.StartDate == "" && payload.Date != "" {
		input.ApplyLegacySchedule(payload.Date, payload.Time)
	}
	return input, nil, nil
}

func decodeMultipart(r *http.Request) (models.EventInput, *models.ImageUpload, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return models.EventInput{}, nil, fmt.Errorf("malformed multipart form: %w", err)
	}

	input := models.EventInput{
		EventName:     r.FormValue("event_name"),
		OrganizerName: r.FormValue("organizer_name"),
		EventType:     r.FormValue("event_type"),
		Description:   r.FormValue("description"),
		StartDate:     r.FormValue("start_date"),
		EndDate:       r.FormValue("end_date"),
		StartTime:     r.FormValue("start_time"),
		EndTime:       r.FormValue("end_time"),
		Location:      r.FormValue("location"),
	}
	if input.StartDate == "" && r.FormValue("date") != "" {
		input.ApplyLegacySchedule(r.FormValue("date"), r.FormValue("time"))
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil, nil
	}
	if err != nil {
		return models.EventInput{}, nil, fmt.Errorf("malformed image part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.EventInput{}, nil, fmt.Errorf("failed to read image: %w", err)
	}

	return input, &models.ImageUpload{Data: data, Filename: header.Filename}, nil
}

// writeError maps domain failures onto HTTP statuses. Validation names the
// offending field; authorization failures never leak partial mutations.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *events.ValidationError
	var authzErr *events.AuthorizationError
	var uploadErr *events.UploadError

	switch {
	case errors.As(err, &validationErr):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Validation failed", validationErr.Error()))
	case errors.Is(err, events.ErrAuthenticationRequired):
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Authentication required", err.Error()))
	case errors.As(err, &authzErr):
		utils.WriteJSON(w, http.StatusForbidden, utils.ErrorResponse("Not allowed", "only the event owner may modify or delete it"))
	case errors.Is(err, events.ErrEventNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Event not found", err.Error()))
	case errors.As(err, &uploadErr):
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse("Image upload failed", uploadErr.Error()))
	default:
		if h.Logger != nil {
			h.Logger.Error("HTTP", fmt.Sprintf("Unhandled error: %v", err))
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal server error", err.Error()))
	}
}
