package appointment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidSlot      = errors.New("invalid slot")
)

// TimeOfDay is a minute-granularity wall-clock time without a date.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts "15:04" form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: minutes}, nil
}

func (t TimeOfDay) Minutes() int { return t.minutes }
func (t TimeOfDay) Hour() int    { return t.minutes / 60 }
func (t TimeOfDay) Minute() int  { return t.minutes % 60 }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t.minutes > other.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Slot is the half-open interval [start, start+duration) an appointment
// occupies on a calendar date. The date carries no timezone semantics; it is
// the salon's local business day.
type Slot struct {
	date     time.Time
	start    TimeOfDay
	duration time.Duration
}

func NewSlot(date time.Time, start TimeOfDay, duration time.Duration) (Slot, error) {
	if date.IsZero() {
		return Slot{}, ErrInvalidSlot
	}
	if duration <= 0 || duration%time.Minute != 0 {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{
		date:     truncateToDay(date),
		start:    start,
		duration: duration,
	}, nil
}

func (s Slot) Date() time.Time         { return s.date }
func (s Slot) Start() TimeOfDay        { return s.start }
func (s Slot) Duration() time.Duration { return s.duration }

func (s Slot) StartAt() time.Time {
	return s.date.Add(time.Duration(s.start.minutes) * time.Minute)
}

func (s Slot) EndAt() time.Time {
	return s.StartAt().Add(s.duration)
}

// end as minutes from midnight; may pass 24h for slots running past midnight
func (s Slot) endMinutes() int {
	return s.start.minutes + int(s.duration/time.Minute)
}

// Overlaps reports whether two half-open intervals on the same date
// intersect. Slots on different dates never overlap, and a slot ending
// exactly when another starts does not conflict (back-to-back bookings).
func (s Slot) Overlaps(other Slot) bool {
	if !s.date.Equal(other.date) {
		return false
	}
	return s.start.minutes < other.endMinutes() && s.endMinutes() > other.start.minutes
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
