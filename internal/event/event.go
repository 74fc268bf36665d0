// Package event holds the calendar event model and its repository.
package event

import (
	"fmt"
	"strings"
	"time"
)

// DefaultGroup is the category assigned when the user picks none.
const DefaultGroup = "General"

// Groups is the built-in category list offered by the UI. The set is
// open: unknown labels are stored as-is.
var Groups = []string{"General", "School", "Clubs", "Class", "Transport", "MyEvents"}

// Event is a user-created calendar item. ID is assigned by the store
// on first insert and stable afterwards. Timestamp is epoch millis and
// drives both ordering and date bucketing.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
	Group       string `json:"group"`
}

// When returns the event time in the given location.
func (e Event) When(loc *time.Location) time.Time {
	return time.UnixMilli(e.Timestamp).In(loc)
}

// ValidationError reports user input rejected before it reaches the
// repository.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks user-supplied fields. A blank title is the one hard
// rejection; everything else gets a default.
func Validate(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// Normalize fills defaults on an event about to be stored.
func Normalize(e Event) Event {
	if strings.TrimSpace(e.Group) == "" {
		e.Group = DefaultGroup
	}
	return e
}
