package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/lifecycle"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
)

func booking(start, end time.Time) model.Booking {
	return model.Booking{
		ID:        "test-id",
		Status:    model.StatusActive,
		StartDate: start,
		EndDate:   end,
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, 12, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		start             time.Time
		end               time.Time
		wantDaysRemaining int
		wantState         lifecycle.TemporalState
		wantStartsToday   bool
	}{
		{
			name:              "ends tomorrow at midnight",
			start:             time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:               time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC),
			wantDaysRemaining: 1,
			wantState:         lifecycle.StateEndingTomorrow,
			wantStartsToday:   false,
		},
		{
			name:              "ends thirty minutes from now rounds up to one day",
			start:             time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:               now.Add(30 * time.Minute),
			wantDaysRemaining: 1,
			wantState:         lifecycle.StateEndingTomorrow,
			wantStartsToday:   false,
		},
		{
			name:              "ends exactly now",
			start:             time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:               now,
			wantDaysRemaining: 0,
			wantState:         lifecycle.StateEndingToday,
			wantStartsToday:   false,
		},
		{
			name:              "ended one hour ago is still ending today, not overdue",
			start:             time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:               now.Add(-time.Hour),
			wantDaysRemaining: 0,
			wantState:         lifecycle.StateEndingToday,
			wantStartsToday:   false,
		},
		{
			name:              "ended twenty five hours ago is overdue",
			start:             time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC),
			end:               now.Add(-25 * time.Hour),
			wantDaysRemaining: -1,
			wantState:         lifecycle.StateOverdue,
			wantStartsToday:   false,
		},
		{
			name:              "ended three full days ago",
			start:             time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
			end:               now.Add(-72 * time.Hour),
			wantDaysRemaining: -3,
			wantState:         lifecycle.StateOverdue,
			wantStartsToday:   false,
		},
		{
			name:              "ends in exactly two days is on track",
			start:             time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:               now.Add(48 * time.Hour),
			wantDaysRemaining: 2,
			wantState:         lifecycle.StateOnTrack,
			wantStartsToday:   false,
		},
		{
			name:              "starts today just after midnight",
			start:             time.Date(2024, 12, 2, 0, 30, 0, 0, time.UTC),
			end:               time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC),
			wantDaysRemaining: 7,
			wantState:         lifecycle.StateOnTrack,
			wantStartsToday:   true,
		},
		{
			name:              "starts two hours earlier but before midnight",
			start:             time.Date(2024, 12, 1, 22, 30, 0, 0, time.UTC),
			end:               time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC),
			wantDaysRemaining: 7,
			wantState:         lifecycle.StateOnTrack,
			wantStartsToday:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := lifecycle.Classify(booking(tt.start, tt.end), now)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDaysRemaining, view.DaysRemaining)
			assert.Equal(t, tt.wantState, view.State)
			assert.Equal(t, tt.wantStartsToday, view.StartsToday)
		})
	}
}

func TestClassify_InvalidDates(t *testing.T) {
	now := time.Date(2024, 12, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{
			name: "zero start date",
			end:  time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zero end date",
			start: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "end before start",
			start: time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lifecycle.Classify(booking(tt.start, tt.end), now)

			assert.ErrorIs(t, err, lifecycle.ErrInvalidDate)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	now := time.Date(2024, 12, 2, 12, 0, 0, 0, time.UTC)
	b := booking(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC))

	first, err := lifecycle.Classify(b, now)
	assert.NoError(t, err)

	second, err := lifecycle.Classify(b, now)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseBucket(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    lifecycle.Bucket
		wantErr bool
	}{
		{name: "all", input: "all", want: lifecycle.BucketAll},
		{name: "today", input: "today", want: lifecycle.BucketToday},
		{name: "overdue", input: "overdue", want: lifecycle.BucketOverdue},
		{name: "empty defaults to all", input: "", want: lifecycle.BucketAll},
		{name: "unknown bucket", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, err := lifecycle.ParseBucket(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, lifecycle.ErrUnknownBucket)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, bucket)
			}
		})
	}
}

func TestFilterByBucket(t *testing.T) {
	now := time.Date(2024, 12, 2, 12, 0, 0, 0, time.UTC)

	startsToday := booking(time.Date(2024, 12, 2, 9, 0, 0, 0, time.UTC), time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC))
	startsToday.ID = "starts-today"

	overdue := booking(time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), now.Add(-48*time.Hour))
	overdue.ID = "overdue"

	onTrack := booking(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), now.Add(96*time.Hour))
	onTrack.ID = "on-track"

	secondOverdue := booking(time.Date(2024, 11, 18, 0, 0, 0, 0, time.UTC), now.Add(-30*time.Hour))
	secondOverdue.ID = "second-overdue"

	input := []model.Booking{startsToday, overdue, onTrack, secondOverdue}

	tests := []struct {
		name    string
		bucket  lifecycle.Bucket
		wantIDs []string
	}{
		{
			name:    "all keeps everything",
			bucket:  lifecycle.BucketAll,
			wantIDs: []string{"starts-today", "overdue", "on-track", "second-overdue"},
		},
		{
			name:    "today keeps bookings starting today",
			bucket:  lifecycle.BucketToday,
			wantIDs: []string{"starts-today"},
		},
		{
			name:    "overdue preserves input order",
			bucket:  lifecycle.BucketOverdue,
			wantIDs: []string{"overdue", "second-overdue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := lifecycle.FilterByBucket(input, tt.bucket, now)
			assert.NoError(t, err)

			gotIDs := make([]string, len(filtered))
			for i, b := range filtered {
				gotIDs[i] = b.ID
			}

			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilterByBucket_InvalidDateSurfaces(t *testing.T) {
	now := time.Date(2024, 12, 2, 12, 0, 0, 0, time.UTC)
	broken := model.Booking{ID: "broken", Status: model.StatusActive}

	_, err := lifecycle.FilterByBucket([]model.Booking{broken}, lifecycle.BucketOverdue, now)

	assert.ErrorIs(t, err, lifecycle.ErrInvalidDate)
}
