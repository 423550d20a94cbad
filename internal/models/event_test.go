package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eventboard/internal/models"
)

func TestIsValidEventType(t *testing.T) {
	assert.True(t, models.IsValidEventType("Concert"))
	assert.True(t, models.IsValidEventType("Seminar / Talk"))
	assert.True(t, models.IsValidEventType("Other"))

	assert.False(t, models.IsValidEventType(""))
	assert.False(t, models.IsValidEventType("concert"))
	assert.False(t, models.IsValidEventType("Rave"))
	// the filter sentinel is not a category
	assert.False(t, models.IsValidEventType(models.FilterAll))
}

func TestEventTypesIsClosed(t *testing.T) {
	assert.Len(t, models.EventTypes, 30)
	for _, eventType := range models.EventTypes {
		assert.True(t, models.IsValidEventType(eventType))
	}
}

func TestSchedule(t *testing.T) {
	in := models.EventInput{StartDate: "2025-03-10", EndDate: "2025-03-12"}

	start, end, err := in.Schedule()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), end)

	in.EndDate = "12-03-2025"
	_, _, err = in.Schedule()
	assert.Error(t, err)
}

func TestApplyLegacySchedule(t *testing.T) {
	var in models.EventInput
	in.ApplyLegacySchedule("2025-05-01", "19:00")

	assert.Equal(t, "2025-05-01", in.StartDate)
	assert.Equal(t, "2025-05-01", in.EndDate)
	assert.Equal(t, "19:00", in.StartTime)
	assert.Equal(t, "19:00", in.EndTime)
}
