package events

import (
	"time"

	"eventboard/internal/models"
)

// The functions in this file are the only place the event invariants are
// enforced. They are pure checks over supplied data: no I/O, no ambient
// session state. The caller identity is always an explicit parameter.

// ValidateForCreate checks the field constraints of a submission and fails on
// the first violated rule, in field order: type, start date, end date,
// required text.
func ValidateForCreate(in models.EventInput) error {
	if in.EventType == "" {
		return &ValidationError{Field: "event_type", Message: "event type is required"}
	}
	if !models.IsValidEventType(in.EventType) {
		return &ValidationError{Field: "event_type", Message: "unknown event type"}
	}

	if in.StartDate == "" {
		return &ValidationError{Field: "start_date", Message: "start date is required"}
	}
	start, err := time.Parse(models.DateLayout, in.StartDate)
	if err != nil {
		return &ValidationError{Field: "start_date", Message: "start date must be formatted as " + models.DateLayout}
	}

	if in.EndDate == "" {
		return &ValidationError{Field: "end_date", Message: "end date is required"}
	}
	end, err := time.Parse(models.DateLayout, in.EndDate)
	if err != nil {
		return &ValidationError{Field: "end_date", Message: "end date must be formatted as " + models.DateLayout}
	}
	if end.Before(start) {
		return &ValidationError{Field: "end_date", Message: "end date must not be before start date"}
	}

	required := []struct {
		field string
		value string
	}{
		{"event_name", in.EventName},
		{"organizer_name", in.OrganizerName},
		{"description", in.Description},
		{"location", in.Location},
		{"start_time", in.StartTime},
		{"end_time", in.EndTime},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field, Message: f.field + " is required"}
		}
	}

	if _, err := time.Parse(models.TimeLayout, in.StartTime); err != nil {
		return &ValidationError{Field: "start_time", Message: "start time must be formatted as " + models.TimeLayout}
	}
	if _, err := time.Parse(models.TimeLayout, in.EndTime); err != nil {
		return &ValidationError{Field: "end_time", Message: "end time must be formatted as " + models.TimeLayout}
	}

	return nil
}

// AuthorizeCreate succeeds only for an authenticated (non-anonymous) caller.
// The HTTP middleware enforces the same rule at the entry boundary; this
// check keeps the engine safe when driven from elsewhere.
func AuthorizeCreate(callerID string) error {
	if callerID == "" {
		return ErrAuthenticationRequired
	}
	return nil
}

// AuthorizeMutation succeeds only if the caller owns the event. The event
// must be the record freshly fetched from the repository, never a copy the
// client sent, so a stale-ownership bypass has no window.
func AuthorizeMutation(event *models.Event, callerID string) error {
	if callerID == "" {
		return ErrAuthenticationRequired
	}
	if event.OwnerID != callerID {
		return &AuthorizationError{EventID: event.ID, CallerID: callerID}
	}
	return nil
}
