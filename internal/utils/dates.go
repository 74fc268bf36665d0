package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseFlexibleDate parses the date/time inputs accepted by the add
// and edit commands: natural keywords, relative offsets, and a set of
// common layouts.
func ParseFlexibleDate(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	now := time.Now().In(loc)

	switch input {
	case "now":
		return now, nil
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, loc), nil
	case "yesterday":
		yesterday := now.AddDate(0, 0, -1)
		return time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, loc), nil
	}

	// "in 2h", "in 3d": offsets into the future
	if rest, ok := strings.CutPrefix(input, "in "); ok {
		if d, err := parseDuration(strings.TrimSpace(rest)); err == nil {
			return now.Add(d), nil
		}
	}

	// "2h ago"
	if rest, ok := strings.CutSuffix(input, " ago"); ok {
		if d, err := parseDuration(strings.TrimSpace(rest)); err == nil {
			return now.Add(-d), nil
		}
	}

	// "tomorrow 15:04" / "today 09:00"
	if day, clock, found := strings.Cut(input, " "); found {
		if t, err := time.ParseInLocation("15:04", clock, loc); err == nil {
			base, err := ParseFlexibleDate(day, loc)
			if err == nil {
				return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
			}
		}
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"Jan 2, 2006",
		"2 Jan 2006",
		"15:04",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, loc); err == nil {
			if format == "15:04" {
				// bare clock time means today at that time
				return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
			}
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// parseDuration parses simple duration strings like "2h", "30m", "1d".
func parseDuration(input string) (time.Duration, error) {
	re := regexp.MustCompile(`^(\d+)([smhdw])$`)
	matches := re.FindStringSubmatch(input)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration format: %s", input)
	}

	num, _ := strconv.Atoi(matches[1])
	switch matches[2] {
	case "s":
		return time.Duration(num) * time.Second, nil
	case "m":
		return time.Duration(num) * time.Minute, nil
	case "h":
		return time.Duration(num) * time.Hour, nil
	case "d":
		return time.Duration(num) * 24 * time.Hour, nil
	case "w":
		return time.Duration(num) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", matches[2])
	}
}

// DayLabel buckets a timestamp for display: "Today", "Tomorrow", or a
// "Monday, Jul 8" style header.
func DayLabel(millis int64, now time.Time, loc *time.Location) string {
	when := time.UnixMilli(millis).In(loc)
	now = now.In(loc)

	switch {
	case sameDay(when, now):
		return "Today"
	case sameDay(when, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return when.Format("Monday, Jan 2")
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
