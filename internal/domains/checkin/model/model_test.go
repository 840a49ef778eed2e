package model_test

import (
	"galpao/config"
	"galpao/internal/domains/checkin/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_Validate(t *testing.T) {
	assert.NoError(t, model.SlotEarly.Validate(nil))
	assert.NoError(t, model.SlotLate.Validate(nil))
	assert.ErrorIs(t, model.Slot("07:00-09:00").Validate(nil), model.ErrInvalidSlot)
	assert.ErrorIs(t, model.Slot("").Validate(nil), model.ErrInvalidSlot)
}

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		cutoff       string
		wantCapacity int
		wantCutoff   string
	}{
		{"defaults when unset", 0, "", 12, "18:00"},
		{"configured", 20, "17:30", 20, "17:30"},
		{"malformed cutoff", -1, "noon", 12, "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Checkin.Capacity = tt.capacity
			cfg.Checkin.CancelCutoffUTC = tt.cutoff

			policy := model.NewPolicy(cfg)

			assert.Equal(t, tt.wantCapacity, policy.Capacity)
			assert.Equal(t, tt.wantCutoff, policy.Cutoff())
		})
	}
}

func TestPolicy_CanCancel(t *testing.T) {
	policy := model.Policy{Capacity: 12, CutoffHour: 18}
	brasilia := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"morning", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), true},
		{"exactly at cutoff", time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC), true},
		{"one second late", time.Date(2024, 5, 1, 18, 0, 1, 0, time.UTC), false},
		{"evening", time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC), false},
		{"15:00 in Brasília", time.Date(2024, 5, 1, 15, 0, 0, 0, brasilia), true},
		{"15:30 in Brasília", time.Date(2024, 5, 1, 15, 30, 0, 0, brasilia), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanCancel(tt.now))
		})
	}
}

func TestCheckin_Day(t *testing.T) {
	checkin := model.Checkin{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2024-05-01", checkin.Day())
}
