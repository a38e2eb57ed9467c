package repositories

import "errors"

var (
	// ErrNotFound is returned (wrapped) when a lookup matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrRatingRange is returned when a review would be persisted with a
	// rating outside 1..5. The form layer rejects these too, but the
	// repositories are the hard boundary.
	ErrRatingRange = errors.New("rating must be between 1 and 5")
)
