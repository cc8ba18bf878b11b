package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferGranularity(t *testing.T) {
	tests := []struct {
		name      string
		durations []int
		want      int
	}{
		{name: "no services falls back to default", durations: nil, want: DefaultGranularityMinutes},
		{name: "exact match", durations: []int{60}, want: 60},
		{name: "largest step not exceeding shortest", durations: []int{50, 90}, want: 45},
		{name: "shortest wins over order", durations: []int{120, 30, 90}, want: 30},
		{name: "too short for any step", durations: []int{10}, want: MinGranularityMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferGranularity(tt.durations))
		})
	}
}

func TestBookingSameScope(t *testing.T) {
	emp1 := int64(1)
	emp2 := int64(2)

	businessWide := &Booking{}
	withEmployee := &Booking{EmployeeID: &emp1}

	assert.True(t, businessWide.SameScope(nil))
	assert.False(t, businessWide.SameScope(&emp1))
	assert.True(t, withEmployee.SameScope(&emp1))
	assert.False(t, withEmployee.SameScope(&emp2))
	assert.False(t, withEmployee.SameScope(nil))
}

func TestBookingCancellationStates(t *testing.T) {
	for status, cancellable := range map[BookingStatus]bool{
		StatusPendingConsent:      true,
		StatusConfirmed:           true,
		StatusCancelledByClient:   false,
		StatusCancelledByBusiness: false,
	} {
		b := &Booking{Status: status}
		assert.Equal(t, cancellable, b.CanBeCancelled(), "status %s", status)
		assert.Equal(t, !cancellable, b.IsCancelled(), "status %s", status)
	}
}
