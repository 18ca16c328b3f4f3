package booking

import (
	"fmt"
	"strings"
	"time"

	"studio-booking/internal/pkg/errs"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"

	minutesPerDay = 24 * 60

	MaxNotesLength = 1000
)

var (
	ErrInvalidDate       = errs.Mark(errs.New("date must be formatted as YYYY-MM-DD"), errs.ErrValidation)
	ErrInvalidTimeOfDay  = errs.Mark(errs.New("time must be formatted as HH:MM"), errs.ErrValidation)
	ErrEndNotAfterStart  = errs.Mark(errs.New("end time must be after start time"), errs.ErrValidation)
	ErrSlotCrossesDay    = errs.Mark(errs.New("slot must end on the same day it starts"), errs.ErrValidation)
	ErrInvalidDuration   = errs.Mark(errs.New("slot duration must be a positive whole number of minutes"), errs.ErrValidation)
	ErrDateInPast        = errs.Mark(errs.New("slot date is in the past"), errs.ErrValidation)
	ErrNotesTooLong      = errs.Mark(errs.New("notes exceed maximum length"), errs.ErrValidation)
	ErrInvalidDateRange  = errs.Mark(errs.New("start date must not be after end date"), errs.ErrValidation)
	ErrMissingIdentifier = errs.Mark(errs.New("resource, provider and owner ids are required"), errs.ErrValidation)
)

// Date is a civil calendar date. The zero value is not a valid date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// DateOf returns the calendar day t falls on in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return NewDate(y, m, d)
}

// DateFromTime drops the clock part of a value read back from storage.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) String() string { return d.t.Format(DateLayout) }
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// TimeOfDay is a minute-precision wall clock time. 24:00 is allowed as an
// end-of-day bound.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return TimeOfDay{minutes: minutesPerDay}, nil
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

// TimeOfDayFromDuration converts an offset from midnight, truncated to minutes.
func TimeOfDayFromDuration(d time.Duration) (TimeOfDay, error) {
	m := int(d / time.Minute)
	if m < 0 || m > minutesPerDay {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: m}, nil
}

func (t TimeOfDay) Minutes() int { return t.minutes }
func (t TimeOfDay) Duration() time.Duration { return time.Duration(t.minutes) * time.Minute }
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes < o.minutes }
func (t TimeOfDay) Compare(o TimeOfDay) int { return t.minutes - o.minutes }
func (t TimeOfDay) Add(d time.Duration) TimeOfDay { return TimeOfDay{minutes: t.minutes + int(d/time.Minute)} }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// TimeSlot identifies a window on one calendar day. Two slots with the same
// date and start time refer to the same bookable unit.
type TimeSlot struct {
	date  Date
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeSlot(date Date, start, end TimeOfDay) (TimeSlot, error) {
	if date.IsZero() {
		return TimeSlot{}, ErrInvalidDate
	}
	if !start.Before(end) {
		return TimeSlot{}, ErrEndNotAfterStart
	}
	if end.minutes > minutesPerDay {
		return TimeSlot{}, ErrSlotCrossesDay
	}
	return TimeSlot{date: date, start: start, end: end}, nil
}

// NewFixedTimeSlot builds a slot of the given length starting at start.
func NewFixedTimeSlot(date Date, start TimeOfDay, length time.Duration) (TimeSlot, error) {
	if length <= 0 || length%time.Minute != 0 {
		return TimeSlot{}, ErrInvalidDuration
	}
	return NewTimeSlot(date, start, start.Add(length))
}

func (ts TimeSlot) Date() Date { return ts.date }
func (ts TimeSlot) Start() TimeOfDay { return ts.start }
func (ts TimeSlot) End() TimeOfDay { return ts.end }
func (ts TimeSlot) Duration() time.Duration { return ts.end.Duration() - ts.start.Duration() }

// StartsAt returns the instant the slot begins in loc.
func (ts TimeSlot) StartsAt(loc *time.Location) time.Time {
	y, m, d := ts.date.t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(ts.start.Duration())
}

// ValidateNotPast rejects slots on a day before today.
func (ts TimeSlot) ValidateNotPast(now time.Time, loc *time.Location) error {
	if ts.date.Before(DateOf(now, loc)) {
		return ErrDateInPast
	}
	return nil
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", ts.date, ts.start, ts.end)
}

// DateRange is inclusive on both ends.
type DateRange struct {
	From Date
	To   Date
}

func NewDateRange(from, to Date) (DateRange, error) {
	if from.IsZero() || to.IsZero() {
		return DateRange{}, ErrInvalidDate
	}
	if from.After(to) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{From: from, To: to}, nil
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: trimmed}, nil
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}

// ContactInfo is how the provider can reach the student about this booking.
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c ContactInfo) IsEmpty() bool {
	return c.Name == "" && c.Email == "" && c.Phone == ""
}
