package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"eventboard/internal/events"
	"eventboard/internal/models"
)

func validInput() models.EventInput {
	return models.EventInput{
		EventName:     "Riverside Jazz Evening",
		OrganizerName: "Riverside Arts Collective",
		EventType:     "Concert",
		Description:   "Open-air jazz by the river.",
		StartDate:     "2025-03-10",
		EndDate:       "2025-03-10",
		StartTime:     "18:30",
		EndTime:       "22:00",
		Location:      "Riverside Park",
	}
}

func TestValidateForCreateValidInput(t *testing.T) {
	assert.NoError(t, events.ValidateForCreate(validInput()))
}

func TestValidateForCreateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.EventInput)
		field  string
	}{
		{"missing event type", func(in *models.EventInput) { in.EventType = "" }, "event_type"},
		{"unknown event type", func(in *models.EventInput) { in.EventType = "Rave" }, "event_type"},
		{"missing start date", func(in *models.EventInput) { in.StartDate = "" }, "start_date"},
		{"unparseable start date", func(in *models.EventInput) { in.StartDate = "10/03/2025" }, "start_date"},
		{"missing end date", func(in *models.EventInput) { in.EndDate = "" }, "end_date"},
		{"unparseable end date", func(in *models.EventInput) { in.EndDate = "soon" }, "end_date"},
		{"missing event name", func(in *models.EventInput) { in.EventName = "" }, "event_name"},
		{"missing organizer name", func(in *models.EventInput) { in.OrganizerName = "" }, "organizer_name"},
		{"missing description", func(in *models.EventInput) { in.Description = "" }, "description"},
		{"missing location", func(in *models.EventInput) { in.Location = "" }, "location"},
		{"missing start time", func(in *models.EventInput) { in.StartTime = "" }, "start_time"},
		{"missing end time", func(in *models.EventInput) { in.EndTime = "" }, "end_time"},
		{"unparseable start time", func(in *models.EventInput) { in.StartTime = "6pm" }, "start_time"},
		{"unparseable end time", func(in *models.EventInput) { in.EndTime = "25:99" }, "end_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			err := events.ValidateForCreate(in)
			assert.Error(t, err)

			var validationErr *events.ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestValidateForCreateDateWindow(t *testing.T) {
	// end before start is rejected
	in := validInput()
	in.StartDate = "2025-03-10"
	in.EndDate = "2025-03-09"
	err := events.ValidateForCreate(in)
	var validationErr *events.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "end_date", validationErr.Field)

	// same day passes
	in.EndDate = "2025-03-10"
	assert.NoError(t, events.ValidateForCreate(in))

	// later end passes
	in.EndDate = "2025-03-12"
	assert.NoError(t, events.ValidateForCreate(in))
}

func TestValidateForCreateChecksTypeBeforeDates(t *testing.T) {
	in := validInput()
	in.EventType = ""
	in.StartDate = ""
	in.EndDate = "bogus"

	err := events.ValidateForCreate(in)
	var validationErr *events.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "event_type", validationErr.Field)
}

func TestAuthorizeCreate(t *testing.T) {
	assert.NoError(t, events.AuthorizeCreate("user-1"))
	assert.ErrorIs(t, events.AuthorizeCreate(""), events.ErrAuthenticationRequired)
}

func TestAuthorizeMutation(t *testing.T) {
	event := &models.Event{ID: "evt-1", OwnerID: "user-a"}

	assert.NoError(t, events.AuthorizeMutation(event, "user-a"))

	err := events.AuthorizeMutation(event, "user-b")
	var authzErr *events.AuthorizationError
	assert.True(t, errors.As(err, &authzErr))
	assert.Equal(t, "evt-1", authzErr.EventID)
	assert.Equal(t, "user-b", authzErr.CallerID)

	assert.ErrorIs(t, events.AuthorizeMutation(event, ""), events.ErrAuthenticationRequired)
}
