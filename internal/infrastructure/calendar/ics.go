// Package calendar builds .ics text for dinner holds exported from the app.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one calendar hold.
type Event struct {
	Title           string
	Location        string
	Start           time.Time
	DurationMinutes int
	Description     string
}

// Exporter builds RFC 5545 text. Pure string assembly, no I/O.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Build renders the event as a standalone VCALENDAR document.
func (e *Exporter) Build(ev Event) string {
	start := ev.Start.UTC()
	end := start.Add(time.Duration(ev.DurationMinutes) * time.Minute)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//onthego//dining//EN",
		"BEGIN:VEVENT",
		"UID:" + uuid.NewString() + "@onthego",
		"DTSTAMP:" + formatICSTime(time.Now().UTC()),
		"DTSTART:" + formatICSTime(start),
		"DTEND:" + formatICSTime(end),
		"SUMMARY:" + escapeText(ev.Title),
	}
	if ev.Location != "" {
		lines = append(lines, "LOCATION:"+escapeText(ev.Location))
	}
	if ev.Description != "" {
		lines = append(lines, "DESCRIPTION:"+escapeText(ev.Description))
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")

	return strings.Join(lines, "\r\n") + "\r\n"
}

func formatICSTime(t time.Time) string {
	return t.Format("20060102T150405Z")
}

// escapeText escapes the characters RFC 5545 reserves in text values.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// ParseStart combines the plan's date and time strings into an event start in
// the given location; zero time when unparsable.
func ParseStart(date, clock string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, clock), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
