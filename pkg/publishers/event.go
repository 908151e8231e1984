package publishers

import (
	"strconv"
	"time"

	"github.com/Adda-Baaj/userdir/internal/domain"
)

// EventTypeUserActive is emitted the first time an active user is observed.
const EventTypeUserActive = "user.active"

// Event represents the payload published downstream.
type Event struct {
	Type        string      `json:"type"`
	Source      string      `json:"source"`
	User        domain.User `json:"user"`
	CollectedAt time.Time   `json:"collected_at"`
}

// NewEvent constructs a user.active Event for a user read from source.
func NewEvent(source string, user domain.User) Event {
	return Event{
		Type:        EventTypeUserActive,
		Source:      source,
		User:        user,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes returns the message attributes shared by queue-style sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type": e.Type,
		"user_id":    strconv.FormatUint(uint64(e.User.ID), 10),
	}
}
