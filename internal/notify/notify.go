// Package notify wraps desktop notifications. Delivery is best-effort:
// a platform without notification support fails quietly from the
// caller's perspective.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

// LevelUp celebrates a level gained from awarded points.
func LevelUp(level int) error {
	return beeep.Alert("Stratizen", fmt.Sprintf("Level up! You reached level %d.", level), "")
}

// FormatReminder builds the title/body pair for an upcoming event.
func FormatReminder(title, group, when string) (string, string) {
	head := "Upcoming event"
	body := fmt.Sprintf("%s (%s) at %s", title, group, when)
	return head, body
}
