package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// slugSeparatorRegex matches every run of characters that cannot appear in a slug.
var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// timeRegex matches H:MM or HH:MM with an optional seconds part (discarded).
var timeRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)

// emailRegex matches a simple local@domain.tld shape.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Slugify derives a URL-safe slug from a title: lowercase, trim, collapse
// each run of non-alphanumeric characters into a single dash, and strip
// leading and trailing dashes.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugSeparatorRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeSlug canonicalizes a caller-supplied slug for lookups.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// dateLayouts are the accepted input layouts for event dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// NormalizeDate parses input against the accepted layouts and returns the
// canonical YYYY-MM-DD form. Timestamps carrying a zone offset are converted
// to UTC first, so the stored date is offset-independent. Normalizing an
// already-normalized date yields the same string.
func NormalizeDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", NewValidationError("date", fmt.Sprintf("cannot be parsed as a calendar date: %q", input))
}

// NormalizeTime validates input against H:MM or HH:MM (a seconds part is
// accepted and discarded) and returns the strict zero-padded HH:MM form.
func NormalizeTime(input string) (string, error) {
	m := timeRegex.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", NewValidationError("time", "must be in HH:MM or HH:MM:SS format")
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return "", NewValidationError("time", "must represent a valid 24-hour clock value")
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// ValidateEmail trims and lowercases input and checks it against the
// local@domain.tld shape, returning the canonical address.
func ValidateEmail(input string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input))
	if email == "" {
		return "", NewValidationError("email", "is required and cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return "", NewValidationError("email", "must be a valid email address")
	}
	return email, nil
}

// requiredEventFields maps each required string field name to an accessor,
// in the order violations are reported.
var requiredEventFields = []struct {
	name  string
	value func(*EventAttrs) *string
}{
	{"title", func(a *EventAttrs) *string { return &a.Title }},
	{"description", func(a *EventAttrs) *string { return &a.Description }},
	{"overview", func(a *EventAttrs) *string { return &a.Overview }},
	{"image", func(a *EventAttrs) *string { return &a.Image }},
	{"venue", func(a *EventAttrs) *string { return &a.Venue }},
	{"location", func(a *EventAttrs) *string { return &a.Location }},
	{"date", func(a *EventAttrs) *string { return &a.Date }},
	{"time", func(a *EventAttrs) *string { return &a.Time }},
	{"mode", func(a *EventAttrs) *string { return &a.Mode }},
	{"audience", func(a *EventAttrs) *string { return &a.Audience }},
	{"organizer", func(a *EventAttrs) *string { return &a.Organizer }},
}

// ValidateAndNormalize checks every event invariant and returns the attrs in
// canonical form: required strings trimmed and non-empty, agenda and tags
// non-empty, date in YYYY-MM-DD, time in HH:MM. It is pure and runs on every
// write path before the store is touched.
func ValidateAndNormalize(attrs EventAttrs) (EventAttrs, error) {
	for _, f := range requiredEventFields {
		v := f.value(&attrs)
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			return EventAttrs{}, NewValidationError(f.name, "is required and cannot be empty")
		}
		*v = trimmed
	}
	if len(attrs.Agenda) == 0 {
		return EventAttrs{}, NewValidationError("agenda", "must contain at least one item")
	}
	if len(attrs.Tags) == 0 {
		return EventAttrs{}, NewValidationError("tags", "must contain at least one tag")
	}

	date, err := NormalizeDate(attrs.Date)
	if err != nil {
		return EventAttrs{}, err
	}
	attrs.Date = date

	t, err := NormalizeTime(attrs.Time)
	if err != nil {
		return EventAttrs{}, err
	}
	attrs.Time = t

	return attrs, nil
}
