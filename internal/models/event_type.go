package models

// FilterAll is the catalog filter sentinel meaning "no type filter".
const FilterAll = "All Events"

// EventTypes is the closed set of categories an event can belong to. The
// list is fixed; clients pick from it, they never free-type a category.
var EventTypes = []string{
	"Concert",
	"Workshop",
	"Exhibition",
	"Festival",
	"Carnival",
	"Conference",
	"Seminar / Talk",
	"Meetup",
	"Art Show",
	"Theatre / Drama",
	"Comedy Show",
	"Food Festival",
	"Farmers Market",
	"Cultural Event",
	"Book Fair / Literature Event",
	"Sports Event / Match",
	"School / College Event",
	"Family Event",
	"Kids Activity",
	"Movie Screening",
	"Tech Expo / Startup Event",
	"Fashion Show",
	"Charity Event / Fundraiser",
	"Product Launch",
	"Pop-up Stall / Market",
	"Training / Bootcamp",
	"Cooking Class / Demo",
	"Open Mic",
	"Religious / Spiritual Gathering",
	"Other",
}

var eventTypeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(EventTypes))
	for _, t := range EventTypes {
		m[t] = struct{}{}
	}
	return m
}()

// IsValidEventType reports whether t is one of the fixed categories. The
// FilterAll sentinel is a filter value, not a category, and is not valid here.
func IsValidEventType(t string) bool {
	_, ok := eventTypeSet[t]
	return ok
}
