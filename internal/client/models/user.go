// Package models defines the client-side data model of the user directory.
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Role is the access level of a user.
type Role int

const (
	RoleStandard Role = 0
	RoleAdmin    Role = 1
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "standard"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdmin
}

// Status tells whether the user may authenticate.
type Status int

const (
	StatusActive Status = iota
	StatusInactive
)

func (s Status) String() string {
	if s == StatusInactive {
		return "inactive"
	}
	return "active"
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// User is one registered user with its session counters.
type User struct {
	ID       int
	Surname  string
	Name     string
	Login    string
	Password string
	Role     Role
	Status   Status

	// LoginCount is the number of successful logins.
	LoginCount int
	// LoginTime is set at successful authentication; nil if never logged in.
	LoginTime *time.Time
	// LogoutTime is cleared at login and set at logout.
	LogoutTime *time.Time

	// Extra keeps persisted keys this model does not know about, so that a
	// rewrite does not drop them.
	Extra map[string]json.RawMessage
	// Unparsed keeps persisted values of known keys that could not be
	// interpreted. The typed field holds the restrictive fallback meanwhile.
	Unparsed map[string]json.RawMessage
}

// IsAdmin reports whether u has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive reports whether u is allowed to log in.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Online reports whether the last session is still open.
func (u *User) Online() bool {
	return u.LoginTime != nil && u.LogoutTime == nil
}

// IDText is the id rendered as decimal text.
func (u *User) IDText() string {
	return strconv.Itoa(u.ID)
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	c := *u
	if u.LoginTime != nil {
		t := *u.LoginTime
		c.LoginTime = &t
	}
	if u.LogoutTime != nil {
		t := *u.LogoutTime
		c.LogoutTime = &t
	}
	c.Extra = cloneRaw(u.Extra)
	c.Unparsed = cloneRaw(u.Unparsed)
	return &c
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
