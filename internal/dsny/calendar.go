package dsny

import (
	"time"

	"dsny-backend/internal/models"
)

// DayProvider answers "what weekday is it" in the caller's local calendar.
// The engine never reads the system clock itself.
type DayProvider interface {
	Today() models.CollectionDay
}

// Calendar is a DayProvider that can also give the current local time,
// used when tasks are dispatched onto a concrete service date.
type Calendar interface {
	DayProvider
	Now() time.Time
	Location() *time.Location
}

// SystemCalendar reads the wall clock in a fixed location, so a call at
// 23:30 New York time is still that day even though UTC has rolled over.
type SystemCalendar struct {
	loc   *time.Location
	clock func() time.Time
}

func NewSystemCalendar(loc *time.Location) *SystemCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &SystemCalendar{loc: loc, clock: time.Now}
}

// WithClock swaps the time source, keeping the location.
func (c *SystemCalendar) WithClock(clock func() time.Time) *SystemCalendar {
	return &SystemCalendar{loc: c.loc, clock: clock}
}

func (c *SystemCalendar) Now() time.Time {
	return c.clock().In(c.loc)
}

func (c *SystemCalendar) Today() models.CollectionDay {
	return models.DayFromWeekday(c.Now().Weekday())
}

func (c *SystemCalendar) Location() *time.Location {
	return c.loc
}

// FixedCalendar always reports the same instant. Useful in tests and for
// back-filling a dispatch for a past date.
type FixedCalendar struct {
	At time.Time
}

func (c FixedCalendar) Now() time.Time {
	return c.At
}

func (c FixedCalendar) Today() models.CollectionDay {
	return models.DayFromWeekday(c.At.Weekday())
}

func (c FixedCalendar) Location() *time.Location {
	return c.At.Location()
}

// ServiceDate truncates t to midnight in its own location.
func ServiceDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
