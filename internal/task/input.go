package task

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for the date and time form fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseTags splits a comma separated tag list. Blank entries are dropped,
// order and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParseDue combines the date and time fields into a due timestamp in loc.
// A nil result without error means no due time was requested: both fields
// have to be present.
func ParseDue(date, clock string, loc *time.Location) (*time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid due date/time %q %q (use %s and %s): %w", date, clock, DateLayout, TimeLayout, err)
	}
	return &due, nil
}
