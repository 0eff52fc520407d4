package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeScored  EventType = "scored"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeStudy    EntityType = "study"
	EntityTypeCustomer EntityType = "customer"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "study.scored"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "study"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// StudyCreated creates a study.created event
func StudyCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeStudy, payload)
}

// StudyUpdated creates a study.updated event
func StudyUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeStudy, payload)
}

// StudyDeleted creates a study.deleted event
func StudyDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeStudy, payload)
}

// StudyScored creates a study.scored event, broadcast after a perform so open
// dashboards refresh.
func StudyScored(payload interface{}) Event {
	return NewEvent(EventTypeScored, EntityTypeStudy, payload)
}

// CustomerCreated creates a customer.created event
func CustomerCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCustomer, payload)
}

// CustomerDeleted creates a customer.deleted event
func CustomerDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCustomer, payload)
}
