package dto_test

import (
	"galpao/internal/domains/checkin/model"
	"galpao/internal/domains/checkin/model/dto"
	"galpao/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestSlotRequest_Validation(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&dto.SlotRequest{Slot: model.SlotEarly}))
	assert.Error(t, validator.ValidateStruct(&dto.SlotRequest{Slot: "09:00-10:00"}))
	assert.Error(t, validator.ValidateStruct(&dto.SlotRequest{}))
}

func TestStatusResponse_FromCheckins(t *testing.T) {
	checkins := []model.Checkin{
		{StudentID: "s-1", Slot: model.SlotEarly},
		{StudentID: "s-2", Slot: model.SlotEarly},
		{StudentID: "s-2", Slot: model.SlotLate},
		{StudentID: "s-3", Slot: model.SlotLate},
	}

	res := dto.StatusResponse{}
	res.FromCheckins(checkins, "s-1", 2)

	assert.Equal(t, []dto.SlotStatus{
		{Slot: model.SlotEarly, Remaining: 0, Reserved: true, Full: true},
		{Slot: model.SlotLate, Remaining: 0, Reserved: false, Full: true},
	}, res.Slots)
}

func TestStatusResponse_EmptyDay(t *testing.T) {
	res := dto.StatusResponse{}
	res.FromCheckins(nil, "s-1", 12)

	for _, slot := range res.Slots {
		assert.Equal(t, 12, slot.Remaining)
		assert.False(t, slot.Reserved)
		assert.False(t, slot.Full)
	}
}

func TestSummaryResponse_FromCheckins(t *testing.T) {
	checkins := []model.Checkin{
		{StudentName: "Ana", Date: day(25), Slot: model.SlotEarly},
		{StudentName: "Ana", Date: day(30), Slot: model.SlotLate},
		{StudentName: "Bruno", Date: day(30), Slot: model.SlotLate},
		{StudentName: "Ana", Date: day(31), Slot: model.SlotEarly},
	}

	res := dto.SummaryResponse{}
	res.FromCheckins(checkins, "2024-05-31", "25/05 - 31/05")

	assert.Equal(t, 1, res.Today.Total)
	assert.Equal(t, []string{"Ana"}, res.Today.BySlot["18:00-20:00"])
	assert.Equal(t, []string{}, res.Today.BySlot["20:00-22:00"])
	assert.Equal(t, "2024-05-31", res.Today.Date)

	assert.Equal(t, 4, res.Week.Total)
	assert.Equal(t, map[string]int{"Ana": 3, "Bruno": 1}, res.Week.ByStudent)
	assert.Equal(t, "25/05 - 31/05", res.Week.Period)
}
