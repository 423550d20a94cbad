package catalog

import (
	"context"
	"fmt"

	"eventboard/internal/logger"
	"eventboard/internal/models"
)

// EventLister is the read side of the event repository.
type EventLister interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// ListingCache is the optional read-through cache in front of the store.
type ListingCache interface {
	Get(ctx context.Context) ([]models.Event, bool)
	Set(ctx context.Context, listings []models.Event) error
}

// Service produces the browsable catalog: all events ascending by start
// date, optionally narrowed to one category.
type Service struct {
	DB     EventLister
	Cache  ListingCache
	Logger *logger.Logger
}

func NewService(db EventLister, cache ListingCache, log *logger.Logger) *Service {
	return &Service{DB: db, Cache: cache, Logger: log}
}

// List returns the catalog. The sentinel "All Events" (or an empty filter)
// means no narrowing. Filtering keeps the relative order of the unfiltered
// list; it never re-sorts, and start_time is not a secondary sort key.
func (s *Service) List(ctx context.Context, filterType string) ([]models.Event, error) {
	listings, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if filterType == "" || filterType == models.FilterAll {
		return listings, nil
	}

	filtered := make([]models.Event, 0, len(listings))
	for _, ev := range listings {
		if ev.EventType == filterType {
			filtered = append(filtered, ev)
		}
	}
	return filtered, nil
}

func (s *Service) fetch(ctx context.Context) ([]models.Event, error) {
	if s.Cache != nil {
		if listings, ok := s.Cache.Get(ctx); ok {
			return listings, nil
		}
	}

	listings, err := s.DB.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, listings); err != nil && s.Logger != nil {
			s.Logger.Warn("CACHE", fmt.Sprintf("Failed to cache catalog listing: %v", err))
		}
	}
	return listings, nil
}
