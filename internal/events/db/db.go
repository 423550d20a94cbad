package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"eventboard/internal/events"
	"eventboard/internal/models"
)

// DB is the bun-backed event repository. Missing rows surface as
// events.ErrEventNotFound; everything else is a wrapped store error.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateEvent(ctx context.Context, event models.Event) error {
	_, err := d.Bun.NewInsert().Model(&event).Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, events.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select event %s: %w", id, err)
	}
	return &event, nil
}

func (d *DB) UpdateEvent(ctx context.Context, event models.Event) error {
	res, err := d.Bun.NewUpdate().
		Model(&event).
		Column("event_name", "organizer_name", "event_type", "description",
			"start_date", "end_date", "start_time", "end_time",
			"location", "image_url", "updated_at").
		Where("id = ?", event.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update event %s: %w", event.ID, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return events.ErrEventNotFound
	}
	return nil
}

func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	res, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return events.ErrEventNotFound
	}
	return nil
}

// ListEvents returns every event ordered by start date ascending. Ties on
// start_date come back in whatever order the store picks.
func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	listings := []models.Event{}
	err := d.Bun.NewSelect().
		Model(&listings).
		Order("start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return listings, nil
}

// ListEventsByOwner returns one owner's events, same ordering as ListEvents.
func (d *DB) ListEventsByOwner(ctx context.Context, ownerID string) ([]models.Event, error) {
	listings := []models.Event{}
	err := d.Bun.NewSelect().
		Model(&listings).
		Where("owner_id = ?", ownerID).
		Order("start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events for owner %s: %w", ownerID, err)
	}
	return listings, nil
}
