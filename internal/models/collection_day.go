package models

import (
	"fmt"
	"strings"
	"time"
)

// CollectionDay is a day of the week on which DSNY may collect.
// Ordinals follow time.Weekday (Sunday = 0 .. Saturday = 6).
type CollectionDay int

const (
	Sunday CollectionDay = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AllCollectionDays lists the week in order, Sunday first.
var AllCollectionDays = []CollectionDay{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var collectionDayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayFromWeekday converts a time.Weekday into a CollectionDay.
func DayFromWeekday(w time.Weekday) CollectionDay {
	return CollectionDay(w)
}

// Valid reports whether d is one of the seven enumerants.
func (d CollectionDay) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// NextDay returns the following day, wrapping Saturday to Sunday.
func (d CollectionDay) NextDay() CollectionDay {
	return CollectionDay((int(d) + 1) % 7)
}

// PreviousDay returns the preceding day, wrapping Sunday to Saturday.
func (d CollectionDay) PreviousDay() CollectionDay {
	return CollectionDay((int(d) + 6) % 7)
}

// IsWeekend reports whether d is Saturday or Sunday.
func (d CollectionDay) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// Weekday returns the matching time.Weekday.
func (d CollectionDay) Weekday() time.Weekday {
	return time.Weekday(d)
}

func (d CollectionDay) String() string {
	if !d.Valid() {
		return fmt.Sprintf("CollectionDay(%d)", int(d))
	}
	return collectionDayNames[d]
}

// Key is the lowercase name used in ids, query params and config files.
func (d CollectionDay) Key() string {
	return strings.ToLower(d.String())
}

// ParseCollectionDay accepts full or three-letter day names in any case.
func ParseCollectionDay(s string) (CollectionDay, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range collectionDayNames {
		full := strings.ToLower(name)
		if v == full || v == full[:3] {
			return CollectionDay(i), nil
		}
	}
	return 0, fmt.Errorf("unknown collection day %q", s)
}

func (d CollectionDay) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid collection day %d", int(d))
	}
	return []byte(d.Key()), nil
}

func (d *CollectionDay) UnmarshalText(text []byte) error {
	parsed, err := ParseCollectionDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ContainsDay reports whether day appears in days.
func ContainsDay(days []CollectionDay, day CollectionDay) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// SortedDays returns a de-duplicated copy of days in Sunday..Saturday order.
func SortedDays(days []CollectionDay) []CollectionDay {
	var seen [7]bool
	for _, d := range days {
		if d.Valid() {
			seen[d] = true
		}
	}
	out := make([]CollectionDay, 0, len(days))
	for _, d := range AllCollectionDays {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}
