package entity

import (
	"time"
)

// Post is an event announcement on the board. Every post belongs to
// exactly one user and is mutable only by deletion.
type Post struct {
	ID          int64
	OwnerID     string
	Title       string
	ContactName string
	EventDate   string
	ContactInfo string
	Timeline    string
	Description string
	CreatedAt   time.Time

	// PostedBy is the owner's display name, populated only by the
	// public feed join.
	PostedBy string
}
