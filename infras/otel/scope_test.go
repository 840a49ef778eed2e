package otel_test

import (
	"galpao/infras/otel"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

type slot string

func (s slot) String() string { return string(s) }

func TestAttribute(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected attribute.Value
	}{
		{"bool", true, attribute.BoolValue(true)},
		{"string", "Ana", attribute.StringValue("Ana")},
		{"int", 12, attribute.IntValue(12)},
		{"int64", int64(3), attribute.Int64Value(3)},
		{"float", 1.5, attribute.Float64Value(1.5)},
		{"slice", []string{"18:00-20:00"}, attribute.StringSliceValue([]string{"18:00-20:00"})},
		{"time", time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC), attribute.StringValue("2024-05-01T18:00:00Z")},
		{"stringer", slot("20:00-22:00"), attribute.StringValue("20:00-22:00")},
		{"fallback", struct{ N int }{7}, attribute.StringValue("{7}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := otel.Attribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.expected, kv.Value)
		})
	}
}
