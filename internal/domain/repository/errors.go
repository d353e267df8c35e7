package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row, and by
	// DeleteOwned when the post is absent or owned by someone else. The
	// two delete cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when the users email unique constraint
	// rejects an insert.
	ErrEmailTaken = errors.New("email already registered")
)
