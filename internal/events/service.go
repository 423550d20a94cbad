package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventboard/internal/kafka"
	"eventboard/internal/logger"
	"eventboard/internal/models"
	"eventboard/internal/utils"
)

// EventDBLayer is the repository contract the service writes through.
type EventDBLayer interface {
	CreateEvent(ctx context.Context, event models.Event) error
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]models.Event, error)
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, originalName string) (string, error)
}

// Producer streams listing-lifecycle facts to the changefeed topics.
type Producer interface {
	Publish(topic string, key string, value []byte) error
}

// ListingCache invalidates the cached catalog listing after a mutation.
type ListingCache interface {
	Invalidate(ctx context.Context) error
}

// EventService runs the mutation pipeline: authorize, validate, upload,
// write, then refresh the read side. Each step aborts the rest on failure so
// no partial event is ever persisted.
type EventService struct {
	DB       EventDBLayer
	Uploader Uploader
	Producer Producer
	Cache    ListingCache
	Logger   *logger.Logger
}

func NewEventService(db EventDBLayer, uploader Uploader, producer Producer, cache ListingCache, log *logger.Logger) *EventService {
	return &EventService{
		DB:       db,
		Uploader: uploader,
		Producer: producer,
		Cache:    cache,
		Logger:   log,
	}
}

// CreateEvent validates and persists a new event owned by callerID. The
// optional image is uploaded before the write; an upload failure aborts the
// whole submission.
func (s *EventService) CreateEvent(ctx context.Context, callerID string, in models.EventInput, image *models.ImageUpload) (*models.Event, error) {
	if err := AuthorizeCreate(callerID); err != nil {
		return nil, err
	}
	if err := ValidateForCreate(in); err != nil {
		return nil, err
	}

	start, end, err := in.Schedule()
	if err != nil {
		// Unreachable after validation, kept so a refactor cannot silently
		// persist an unparsed window.
		return nil, &ValidationError{Field: "start_date", Message: "unparseable schedule"}
	}

	var imageURL *string
	if image != nil {
		url, err := s.Uploader.Upload(ctx, image.Data, image.Filename)
		if err != nil {
			return nil, &UploadError{Err: err}
		}
		imageURL = &url
	}

	now := time.Now().UTC()
	event := models.Event{
		ID:            utils.GenerateEventID(),
		OwnerID:       callerID,
		EventName:     in.EventName,
		OrganizerName: in.OrganizerName,
		EventType:     in.EventType,
		Description:   in.Description,
		StartDate:     start,
		EndDate:       end,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Location:      in.Location,
		ImageURL:      imageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.DB.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.refreshReadSide(ctx, kafka.TopicListingCreated, &event)
	return &event, nil
}

// GetEvent returns the event by id.
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.DB.GetEventByID(ctx, id)
}

// UpdateEvent re-validates the full submission and overwrites the mutable
// fields. Ownership is checked against the record fetched fresh from the
// repository, never a client copy. When no new image is sent the previous
// URL is kept.
func (s *EventService) UpdateEvent(ctx context.Context, callerID, id string, in models.EventInput, image *models.ImageUpload) (*models.Event, error) {
	existing, err := s.DB.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMutation(existing, callerID); err != nil {
		return nil, err
	}
	if err := ValidateForCreate(in); err != nil {
		return nil, err
	}

	start, end, err := in.Schedule()
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Message: "unparseable schedule"}
	}

	imageURL := existing.ImageURL
	if image != nil {
		url, err := s.Uploader.Upload(ctx, image.Data, image.Filename)
		if err != nil {
			return nil, &UploadError{Err: err}
		}
		imageURL = &url
	}

	updated := *existing
	updated.EventName = in.EventName
	updated.OrganizerName = in.OrganizerName
	updated.EventType = in.EventType
	updated.Description = in.Description
	updated.StartDate = start
	updated.EndDate = end
	updated.StartTime = in.StartTime
	updated.EndTime = in.EndTime
	updated.Location = in.Location
	updated.ImageURL = imageURL
	updated.UpdatedAt = time.Now().UTC()

	if err := s.DB.UpdateEvent(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}

	s.refreshReadSide(ctx, kafka.TopicListingUpdated, &updated)
	return &updated, nil
}

// DeleteEvent permanently removes the event. No soft delete: the record is
// gone from the catalog and the owner's listing the moment this returns.
func (s *EventService) DeleteEvent(ctx context.Context, callerID, id string) error {
	existing, err := s.DB.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeMutation(existing, callerID); err != nil {
		return err
	}

	if err := s.DB.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.refreshReadSide(ctx, kafka.TopicListingDeleted, existing)
	return nil
}

// ListEventsByOwner returns the caller's own events ordered by start date.
func (s *EventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]models.Event, error) {
	if err := AuthorizeCreate(ownerID); err != nil {
		return nil, err
	}
	listings, err := s.DB.ListEventsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for owner %s: %w", ownerID, err)
	}
	return listings, nil
}

// refreshReadSide drops the cached catalog and streams the lifecycle fact.
// Both are best-effort: the write already succeeded, so failures here are
// logged and the response stays successful.
func (s *EventService) refreshReadSide(ctx context.Context, topic string, event *models.Event) {
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			s.warn("CACHE", fmt.Sprintf("Failed to invalidate catalog cache: %v", err))
		}
	}
	if s.Producer == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		s.warn("KAFKA", fmt.Sprintf("Failed to marshal event %s for changefeed: %v", event.ID, err))
		return
	}
	if err := s.Producer.Publish(topic, event.ID, value); err != nil {
		s.warn("KAFKA", fmt.Sprintf("Failed to publish %s for event %s: %v", topic, event.ID, err))
	}
}

func (s *EventService) warn(category, message string) {
	if s.Logger != nil {
		s.Logger.Warn(category, message)
	}
}
