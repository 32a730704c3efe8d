package services

// EventPublisher publishes fire-and-forget domain events to the message
// broker. Implementations must be safe for concurrent use. Services treat a
// nil publisher as "events disabled" and publishing failures as log-only.
type EventPublisher interface {
	PublishEvent(event string, payload map[string]interface{}) error
}
