package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"eventboard/internal/events"
	"eventboard/internal/events/db"
	"eventboard/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.Event)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create events table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func date(value string) time.Time {
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func testEvent(ownerID, eventType, startDate string) models.Event {
	return models.Event{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		EventName:     "Test Event",
		OrganizerName: "Test Organizer",
		EventType:     eventType,
		Description:   "A test listing.",
		StartDate:     date(startDate),
		EndDate:       date(startDate),
		StartTime:     "10:00",
		EndTime:       "12:00",
		Location:      "Town Hall",
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	ctx := context.Background()
	event := testEvent("user-a", "Concert", "2025-03-10")

	assert.NoError(t, eventDB.CreateEvent(ctx, event))

	got, err := eventDB.GetEventByID(ctx, event.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, "user-a", got.OwnerID)
	assert.Equal(t, "Concert", got.EventType)
	assert.Nil(t, got.ImageURL)

	// non-existent id
	got, err = eventDB.GetEventByID(ctx, "non-existent")
	assert.ErrorIs(t, err, events.ErrEventNotFound)
	assert.Nil(t, got)
}

func TestUpdateEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	ctx := context.Background()
	event := testEvent("user-a", "Workshop", "2025-04-01")
	assert.NoError(t, eventDB.CreateEvent(ctx, event))

	event.EventName = "Renamed Workshop"
	event.EndDate = date("2025-04-02")
	imageURL := "https://assets.example.com/deadbeef.jpg"
	event.ImageURL = &imageURL
	assert.NoError(t, eventDB.UpdateEvent(ctx, event))

	got, err := eventDB.GetEventByID(ctx, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed Workshop", got.EventName)
	assert.Equal(t, date("2025-04-02"), got.EndDate.UTC())
	if assert.NotNil(t, got.ImageURL) {
		assert.Equal(t, imageURL, *got.ImageURL)
	}

	// owner_id is not in the update column list, so it cannot be reassigned
	event.OwnerID = "user-b"
	assert.NoError(t, eventDB.UpdateEvent(ctx, event))
	got, err = eventDB.GetEventByID(ctx, event.ID)
	assert.NoError(t, err)
	assert.Equal(t, "user-a", got.OwnerID)

	// updating a missing row reports not found
	missing := testEvent("user-a", "Workshop", "2025-04-01")
	assert.ErrorIs(t, eventDB.UpdateEvent(ctx, missing), events.ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	ctx := context.Background()
	event := testEvent("user-a", "Meetup", "2025-05-20")
	assert.NoError(t, eventDB.CreateEvent(ctx, event))

	assert.NoError(t, eventDB.DeleteEvent(ctx, event.ID))

	_, err := eventDB.GetEventByID(ctx, event.ID)
	assert.ErrorIs(t, err, events.ErrEventNotFound)

	listings, err := eventDB.ListEvents(ctx)
	assert.NoError(t, err)
	assert.Empty(t, listings)

	owned, err := eventDB.ListEventsByOwner(ctx, "user-a")
	assert.NoError(t, err)
	assert.Empty(t, owned)

	// deleting again reports not found
	assert.ErrorIs(t, eventDB.DeleteEvent(ctx, event.ID), events.ErrEventNotFound)
}

func TestListEventsOrderedByStartDate(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	ctx := context.Background()
	third := testEvent("user-a", "Concert", "2025-06-15")
	first := testEvent("user-b", "Workshop", "2025-01-05")
	second := testEvent("user-a", "Concert", "2025-03-10")

	for _, ev := range []models.Event{third, first, second} {
		assert.NoError(t, eventDB.CreateEvent(ctx, ev))
	}

	listings, err := eventDB.ListEvents(ctx)
	assert.NoError(t, err)
	if assert.Len(t, listings, 3) {
		assert.Equal(t, first.ID, listings[0].ID)
		assert.Equal(t, second.ID, listings[1].ID)
		assert.Equal(t, third.ID, listings[2].ID)
	}
}

func TestListEventsByOwner(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	ctx := context.Background()
	mineLater := testEvent("user-a", "Concert", "2025-09-01")
	mineSooner := testEvent("user-a", "Meetup", "2025-02-14")
	theirs := testEvent("user-b", "Festival", "2025-03-01")

	for _, ev := range []models.Event{mineLater, mineSooner, theirs} {
		assert.NoError(t, eventDB.CreateEvent(ctx, ev))
	}

	owned, err := eventDB.ListEventsByOwner(ctx, "user-a")
	assert.NoError(t, err)
	if assert.Len(t, owned, 2) {
		assert.Equal(t, mineSooner.ID, owned[0].ID)
		assert.Equal(t, mineLater.ID, owned[1].ID)
	}
}
