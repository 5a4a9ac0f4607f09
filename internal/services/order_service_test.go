// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCommissionCents(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		percent  float64
		expected int64
	}{
		{"ten percent of 10000", 10000, 10, 1000},
		{"five percent of 2999", 2999, 5, 150},
		{"rounds half up", 1050, 5, 53},
		{"rounds down below half", 1040, 5, 52},
		{"zero subtotal", 0, 10, 0},
		{"zero percent", 10000, 0, 0},
		{"negative subtotal", -500, 10, 0},
		{"negative percent", 10000, -5, 0},
		{"full commission", 10000, 100, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeCommissionCents(tt.subtotal, tt.percent))
		})
	}
}
