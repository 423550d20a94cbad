package events

import (
	"errors"
	"fmt"
)

// ErrAuthenticationRequired means an anonymous caller attempted a write.
var ErrAuthenticationRequired = errors.New("authentication required")

// ErrEventNotFound means the id has no record (stale link, already deleted).
var ErrEventNotFound = errors.New("event not found")

// ValidationError reports the first violated field constraint of a create or
// edit submission. Nothing is written when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthorizationError means an authenticated caller tried to mutate an event
// they do not own.
type AuthorizationError struct {
	EventID  string
	CallerID string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("caller %s is not the owner of event %s", e.CallerID, e.EventID)
}

// UploadError wraps an image store failure. The submission is aborted before
// any repository write so no event ever references a missing asset.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
