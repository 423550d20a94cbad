package kafka

// Listing changefeed topics. One fact per committed repository write; the
// payload is the event record as JSON, keyed by event id.
const (
	TopicListingCreated = "eventboard.listing.created"
	TopicListingUpdated = "eventboard.listing.updated"
	TopicListingDeleted = "eventboard.listing.deleted"
)

// AllTopics returns every topic the service publishes to, for startup
// topic creation.
func AllTopics() []string {
	return []string{
		TopicListingCreated,
		TopicListingUpdated,
		TopicListingDeleted,
	}
}
