package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mandiops.com/mandiops/utils"
)

func TestComputeStatus(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, utils.ReportingTZ)
	noon := date.Add(12 * time.Hour)
	punchIn := utils.Ptr(date.Add(9 * time.Hour))
	punchOut := utils.Ptr(date.Add(18 * time.Hour))

	tests := []struct {
		name     string
		in       StatusInput
		expected SessionStatus
	}{
		{
			name:     "All done at noon",
			in:       StatusInput{CompletedCount: 13, TotalCount: 13, PunchIn: punchIn, PunchOut: punchOut, Date: date, Now: noon},
			expected: StatusCompleted,
		},
		{
			name:     "All done stays completed past the deadline",
			in:       StatusInput{CompletedCount: 13, TotalCount: 13, Date: date, Now: date.AddDate(0, 0, 3)},
			expected: StatusCompleted,
		},
		{
			name:     "Punched in but never out can still complete",
			in:       StatusInput{CompletedCount: 13, TotalCount: 13, PunchIn: punchIn, Date: date, Now: noon},
			expected: StatusCompleted,
		},
		{
			name:     "In progress before deadline",
			in:       StatusInput{CompletedCount: 5, TotalCount: 13, PunchIn: punchIn, Date: date, Now: noon},
			expected: StatusActive,
		},
		{
			name:     "Nothing done before deadline",
			in:       StatusInput{CompletedCount: 0, TotalCount: 13, Date: date, Now: noon},
			expected: StatusActive,
		},
		{
			name:     "Punched out with tasks missing",
			in:       StatusInput{CompletedCount: 10, TotalCount: 13, PunchIn: punchIn, PunchOut: punchOut, Date: date, Now: date.Add(19 * time.Hour)},
			expected: StatusIncomplete,
		},
		{
			name:     "Exactly at the deadline is not expired",
			in:       StatusInput{CompletedCount: 10, TotalCount: 13, PunchIn: punchIn, Date: date, Now: Deadline(date)},
			expected: StatusActive,
		},
		{
			name:     "One second past midnight expires",
			in:       StatusInput{CompletedCount: 10, TotalCount: 13, PunchIn: punchIn, Date: date, Now: date.AddDate(0, 0, 1).Add(time.Second)},
			expected: StatusIncompleteExpire,
		},
		{
			name:     "Expired regardless of punches",
			in:       StatusInput{CompletedCount: 0, TotalCount: 13, Date: date, Now: date.AddDate(0, 0, 2)},
			expected: StatusIncompleteExpire,
		},
		{
			name:     "Planning day single slot completes",
			in:       StatusInput{CompletedCount: 1, TotalCount: 1, Date: date, Now: noon},
			expected: StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ComputeStatus(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}

	t.Run("Now before the date is rejected", func(t *testing.T) {
		_, err := ComputeStatus(StatusInput{
			CompletedCount: 0,
			TotalCount:     13,
			Date:           date,
			Now:            date.Add(-time.Hour),
		})
		assert.ErrorIs(t, err, ErrNowBeforeDate)
	})

	t.Run("Empty checklist never completes", func(t *testing.T) {
		status, err := ComputeStatus(StatusInput{Date: date, Now: noon})
		assert.NoError(t, err)
		assert.Equal(t, StatusActive, status)
	})
}

func TestNotStarted(t *testing.T) {
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, utils.ReportingTZ)
	punchIn := utils.Ptr(date.Add(9 * time.Hour))

	assert.True(t, NotStarted(StatusInput{CompletedCount: 0}))
	assert.False(t, NotStarted(StatusInput{CompletedCount: 0, PunchIn: punchIn}))
	assert.False(t, NotStarted(StatusInput{CompletedCount: 1}))
}

func TestDeadline(t *testing.T) {
	// deadline is defined in the reporting zone even for an off-zone input
	date := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	d := Deadline(date)
	assert.Equal(t, 23, d.Hour())
	assert.Equal(t, 59, d.Minute())
	assert.Equal(t, 59, d.Second())
	assert.Equal(t, utils.ReportingTZ.String(), d.Location().String())
}
