// Package gameday maps wall-clock time onto lottery game days.
package gameday

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Layout is the format of a game day key.
const Layout = "2006-01-02"

// Parse validates a game day key and returns the day at midnight UTC.
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(Layout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid game day %q: %w", day, err)
	}
	return t, nil
}

// Key formats t as a game day key.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// AddDays returns the key n days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return Key(t.AddDate(0, 0, n)), nil
}

// Range returns every day key from `from` to `to` inclusive.
func Range(from, to string) ([]string, error) {
	start, err := Parse(from)
	if err != nil {
		return nil, err
	}
	end, err := Parse(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s is before start %s", to, from)
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Key(d))
	}
	return days, nil
}

// Clock derives game days from the draw schedule.
type Clock struct {
	schedule cron.Schedule
	location *time.Location
	grace    time.Duration
}

// NewClock parses a standard five-field cron expression for the draw time, evaluated in
// the given IANA timezone. Grace is how late a draw trigger may fire and still be
// attributed to the draw it was scheduled for.
func NewClock(drawSchedule, timezone string, grace time.Duration) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw timezone %q: %w", timezone, err)
	}
	schedule, err := cron.ParseStandard(drawSchedule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse draw schedule %q: %w", drawSchedule, err)
	}
	return &Clock{schedule: schedule, location: loc, grace: grace}, nil
}

// Location is the timezone draws are scheduled in.
func (c *Clock) Location() *time.Location {
	return c.location
}

// NextDraw returns the first draw strictly after t.
func (c *Clock) NextDraw(t time.Time) time.Time {
	return c.schedule.Next(t.In(c.location))
}

// CurrentGameDay returns the day whose pool a purchase made at t contributes to: the
// day concluded by the next draw. A draw at midnight concludes the previous date.
func (c *Clock) CurrentGameDay(t time.Time) string {
	return c.dayOf(c.NextDraw(t))
}

// ClosedGameDay returns the day concluded by the draw that fired at (or shortly before)
// firedAt.
func (c *Clock) ClosedGameDay(firedAt time.Time) string {
	return c.dayOf(c.NextDraw(firedAt.Add(-c.grace)))
}

func (c *Clock) dayOf(draw time.Time) string {
	return Key(draw.Add(-time.Second))
}
