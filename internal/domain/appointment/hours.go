package appointment

import (
	"errors"
	"time"
)

var (
	ErrInvalidBusinessHours = errors.New("invalid business hours window")
	ErrOutsideHours         = errors.New("slot is outside business hours")
	ErrDateInPast           = errors.New("date is before the current day")
)

// BusinessHours is the salon's daily operating window. A slot is admissible
// only if it both starts and finishes inside [open, close], so the last
// bookable start for a service is close minus its duration.
type BusinessHours struct {
	open  TimeOfDay
	close TimeOfDay
}

func NewBusinessHours(open, close TimeOfDay) (BusinessHours, error) {
	if !open.Before(close) {
		return BusinessHours{}, ErrInvalidBusinessHours
	}
	return BusinessHours{open: open, close: close}, nil
}

func ParseBusinessHours(open, close string) (BusinessHours, error) {
	o, err := ParseTimeOfDay(open)
	if err != nil {
		return BusinessHours{}, err
	}
	c, err := ParseTimeOfDay(close)
	if err != nil {
		return BusinessHours{}, err
	}
	return NewBusinessHours(o, c)
}

func (b BusinessHours) Open() TimeOfDay  { return b.open }
func (b BusinessHours) Close() TimeOfDay { return b.close }

// Allows validates that slot fits entirely within the operating window.
func (b BusinessHours) Allows(slot Slot) error {
	if slot.Start().Before(b.open) {
		return ErrOutsideHours
	}
	if slot.endMinutes() > b.close.Minutes() {
		return ErrOutsideHours
	}
	return nil
}

// ValidateDate rejects calendar days strictly before today. Same-day
// bookings remain valid regardless of the current wall-clock time.
func ValidateDate(date, today time.Time) error {
	if truncateToDay(date).Before(truncateToDay(today)) {
		return ErrDateInPast
	}
	return nil
}
