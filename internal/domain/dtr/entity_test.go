package dtr

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRegularHours(t *testing.T) {
	tests := []struct {
		name       string
		timeIn     string
		timeOut    string
		breakHours string
		expected   string
	}{
		{
			name:       "standard nine to five",
			timeIn:     "08:00",
			timeOut:    "17:00",
			breakHours: "1",
			expected:   "8",
		},
		{
			name:       "no break",
			timeIn:     "09:00",
			timeOut:    "17:00",
			breakHours: "0",
			expected:   "8",
		},
		{
			name:       "half hour break",
			timeIn:     "08:30",
			timeOut:    "17:00",
			breakHours: "0.5",
			expected:   "8",
		},
		{
			name:       "overnight shift wraps to next day",
			timeIn:     "22:00",
			timeOut:    "06:00",
			breakHours: "1",
			expected:   "7",
		},
		{
			name:       "break longer than shift floors at zero",
			timeIn:     "09:00",
			timeOut:    "10:00",
			breakHours: "2",
			expected:   "0",
		},
		{
			name:       "zero length shift",
			timeIn:     "09:00",
			timeOut:    "09:00",
			breakHours: "0",
			expected:   "0",
		},
		{
			name:       "fractional result",
			timeIn:     "08:00",
			timeOut:    "16:15",
			breakHours: "1",
			expected:   "7.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakHours, err := decimal.NewFromString(tt.breakHours)
			require.NoError(t, err)

			got, err := ComputeRegularHours(tt.timeIn, tt.timeOut, breakHours)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestComputeRegularHours_InvalidClock(t *testing.T) {
	tests := []struct {
		name    string
		timeIn  string
		timeOut string
	}{
		{"bad time in", "25:00", "17:00"},
		{"bad time out", "08:00", "17:60"},
		{"missing colon", "0800", "17:00"},
		{"empty", "", "17:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeRegularHours(tt.timeIn, tt.timeOut, decimal.NewFromInt(1))
			assert.ErrorIs(t, err, ErrInvalidClockTime)
		})
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusProcessing, false},
		{StatusPending, StatusPaid, false},
		{StatusRejected, StatusPending, true},
		{StatusRejected, StatusApproved, false},
		{StatusApproved, StatusProcessing, true},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusPaid, false},
		{StatusProcessing, StatusProcessed, true},
		{StatusProcessing, StatusApproved, false},
		{StatusProcessed, StatusPaid, true},
		{StatusProcessed, StatusPending, false},
		{StatusPaid, StatusPending, false},
		{StatusPaid, StatusProcessed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsEditable(t *testing.T) {
	assert.True(t, StatusPending.IsEditable())
	assert.True(t, StatusRejected.IsEditable())
	assert.False(t, StatusApproved.IsEditable())
	assert.False(t, StatusProcessing.IsEditable())
	assert.False(t, StatusProcessed.IsEditable())
	assert.False(t, StatusPaid.IsEditable())
}
