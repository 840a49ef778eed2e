package model

import (
	"errors"
	"galpao/config"
	"galpao/shared/constant"
	"galpao/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "checkins"
	EntityName = "checkin"

	FieldID        = "id"
	FieldStudentID = "student_id"
	FieldDate      = "checkin_date"
	FieldSlot      = "slot"
)

const (
	SlotEarly Slot = "18:00-20:00"
	SlotLate  Slot = "20:00-22:00"
)

const (
	DefaultCapacity     = 12
	DefaultCancelCutoff = "18:00"
)

var ErrInvalidSlot = errors.New("invalid slot")

// Slots are the bookable windows of every day, in display order.
var Slots = []Slot{SlotEarly, SlotLate}

type Slot string

func (s Slot) Valid() bool {
	return slices.Contains(Slots, s)
}

// Validate backs the "galpao" validation tag.
func (s Slot) Validate(_ *config.Config) error {
	if !s.Valid() {
		return ErrInvalidSlot
	}

	return nil
}

type Checkin struct {
	ID          string    `db:"id"`
	StudentID   string    `db:"student_id"`
	Date        time.Time `db:"checkin_date"`
	Slot        Slot      `db:"slot"`
	StudentName string    `db:"student_name" table:"students" column:"name"`
	model.Metadata
}

func (Checkin) GetJoinQuery() string {
	return "JOIN students ON students.id = checkins.student_id"
}

// Day is the stored calendar date. DATE columns carry no zone, so no conversion is applied.
func (c Checkin) Day() string {
	return c.Date.Format(constant.DayFormat)
}

// Policy holds the per-slot capacity and the daily cancellation cutoff in UTC.
type Policy struct {
	Capacity     int
	CutoffHour   int
	CutoffMinute int
}

// NewPolicy reads capacity and cutoff from config, falling back to the defaults for
// zero or malformed values.
func NewPolicy(cfg *config.Config) Policy {
	capacity := cfg.Checkin.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	cutoff, err := time.Parse(constant.ClockFormat, cfg.Checkin.CancelCutoffUTC)
	if err != nil {
		cutoff, _ = time.Parse(constant.ClockFormat, DefaultCancelCutoff)
	}

	return Policy{
		Capacity:     capacity,
		CutoffHour:   cutoff.Hour(),
		CutoffMinute: cutoff.Minute(),
	}
}

// CanCancel reports whether now is not later than today's cutoff, compared in UTC.
func (p Policy) CanCancel(now time.Time) bool {
	utc := now.UTC()
	cutoff := time.Date(utc.Year(), utc.Month(), utc.Day(), p.CutoffHour, p.CutoffMinute, 0, 0, time.UTC)

	return !utc.After(cutoff)
}

// Cutoff renders the cutoff as HH:MM.
func (p Policy) Cutoff() string {
	return time.Date(0, 1, 1, p.CutoffHour, p.CutoffMinute, 0, 0, time.UTC).Format(constant.ClockFormat)
}
