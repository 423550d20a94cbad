package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DateLayout is the wire format for calendar dates. Dates are timezone-naive
// and day-granular; they are parsed and stored at UTC midnight.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for clock times ("18:30").
const TimeLayout = "15:04"

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID            string    `bun:"id,pk" json:"id"`
	OwnerID       string    `bun:"owner_id,notnull" json:"owner_id"`
	EventName     string    `bun:"event_name,notnull" json:"event_name"`
	OrganizerName string    `bun:"organizer_name,notnull" json:"organizer_name"`
	EventType     string    `bun:"event_type,notnull" json:"event_type"`
	Description   string    `bun:"description,notnull" json:"description"`
	StartDate     time.Time `bun:"start_date,notnull" json:"start_date"`
	EndDate       time.Time `bun:"end_date,notnull" json:"end_date"`
	StartTime     string    `bun:"start_time,notnull" json:"start_time"`
	EndTime       string    `bun:"end_time,notnull" json:"end_time"`
	Location      string    `bun:"location,notnull" json:"location"`
	ImageURL      *string   `bun:"image_url,nullzero" json:"image_url,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

// EventInput carries the client-supplied fields of a create or edit
// submission. Owner and id are never part of the payload; they come from the
// verified token subject and the store respectively.
type EventInput struct {
	EventName     string `json:"event_name"`
	OrganizerName string `json:"organizer_name"`
	EventType     string `json:"event_type"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Location      string `json:"location"`
}

// Schedule parses the input's date window. Callers are expected to have run
// the input through validation first; errors here mean unparseable dates.
func (in EventInput) Schedule() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, in.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(DateLayout, in.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ImageUpload is an optional image attached to a create or edit submission.
type ImageUpload struct {
	Data     []byte
	Filename string
}

// ApplyLegacySchedule maps the old single date+time schema onto the canonical
// window shape: a legacy record spans one day, with the same clock time on
// both ends. Used when decoding payloads from clients still on the old form.
func (in *EventInput) ApplyLegacySchedule(date, clock string) {
	in.StartDate = date
	in.EndDate = date
	in.StartTime = clock
	in.EndTime = clock
}
