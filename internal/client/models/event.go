package models

import "time"

// EventKind classifies a journaled session event.
type EventKind string

const (
	EventLogin  EventKind = "login"
	EventLogout EventKind = "logout"
)

// SessionEvent is one login or logout recorded in the activity journal.
type SessionEvent struct {
	ID    int64
	Login string
	Kind  EventKind
	At    time.Time
}
