package dto

import (
	"galpao/internal/domains/checkin/model"
	gModel "galpao/shared/model"
	"time"

	"github.com/google/uuid"
)

type SlotRequest struct {
	Slot model.Slot `json:"slot" validate:"required,galpao"`
}

func NewCheckinModel(studentID string, day time.Time, slot model.Slot, username string, now time.Time) model.Checkin {
	return model.Checkin{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Date:      day,
		Slot:      slot,
		Metadata:  gModel.NewMetadata(now, username),
	}
}

type CheckinResponse struct {
	Message string     `json:"message"`
	Slot    model.Slot `json:"slot"`
	Date    string     `json:"date"`
	Credits int        `json:"credits"`
}

type SlotStatus struct {
	Slot      model.Slot `json:"slot"`
	Remaining int        `json:"remaining"`
	Reserved  bool       `json:"reserved"`
	Full      bool       `json:"full"`
}

type StatusResponse struct {
	Name            string       `json:"name"`
	Credits         int          `json:"credits"`
	Date            string       `json:"date"`
	CanCancel       bool         `json:"can_cancel"`
	CancelCutoffUTC string       `json:"cancel_cutoff_utc"`
	Slots           []SlotStatus `json:"slots"`
}

// FromCheckins derives per-slot occupancy for one day from that day's check-ins.
func (r *StatusResponse) FromCheckins(checkins []model.Checkin, studentID string, capacity int) {
	r.Slots = make([]SlotStatus, len(model.Slots))

	for i, slot := range model.Slots {
		count := 0
		reserved := false

		for _, checkin := range checkins {
			if checkin.Slot != slot {
				continue
			}

			count++

			if checkin.StudentID == studentID {
				reserved = true
			}
		}

		r.Slots[i] = SlotStatus{
			Slot:      slot,
			Remaining: capacity - count,
			Reserved:  reserved,
			Full:      count >= capacity,
		}
	}
}

type DaySummary struct {
	Total  int                 `json:"total"`
	BySlot map[string][]string `json:"by_slot"`
	Date   string              `json:"date"`
}

type WeekSummary struct {
	Total     int            `json:"total"`
	ByStudent map[string]int `json:"by_student"`
	Period    string         `json:"period"`
}

type SummaryResponse struct {
	Today DaySummary  `json:"today"`
	Week  WeekSummary `json:"week"`
}

// FromCheckins splits check-ins of the trailing week into today's roster and weekly counts.
func (r *SummaryResponse) FromCheckins(checkins []model.Checkin, today string, period string) {
	r.Today = DaySummary{
		BySlot: make(map[string][]string, len(model.Slots)),
		Date:   today,
	}

	for _, slot := range model.Slots {
		r.Today.BySlot[string(slot)] = []string{}
	}

	r.Week = WeekSummary{
		Total:     len(checkins),
		ByStudent: map[string]int{},
		Period:    period,
	}

	for _, checkin := range checkins {
		r.Week.ByStudent[checkin.StudentName]++

		if checkin.Day() != today {
			continue
		}

		r.Today.Total++
		r.Today.BySlot[string(checkin.Slot)] = append(r.Today.BySlot[string(checkin.Slot)], checkin.StudentName)
	}
}
