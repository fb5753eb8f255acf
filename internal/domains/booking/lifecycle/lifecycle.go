// Package lifecycle derives the time-based state of bookings for the admin
// dashboard: how many days a rental has left, whether it starts today, and the
// aggregate counters shown on the stat cards. Everything here is a pure
// function over an in-memory snapshot; the current time is always passed in by
// the caller so one refresh cycle sees one consistent clock reading.
package lifecycle

import (
	"errors"
	"time"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

var ErrInvalidDate = errors.New("booking has invalid start/end dates")

// TemporalState classifies a booking relative to "now", independent of its
// lifecycle status.
type TemporalState string

const (
	StateOverdue        TemporalState = "overdue"
	StateEndingToday    TemporalState = "ending_today"
	StateEndingTomorrow TemporalState = "ending_tomorrow"
	StateOnTrack        TemporalState = "on_track"
)

// Bucket selects a temporal slice of the active-rentals view.
type Bucket string

const (
	BucketAll     Bucket = "all"
	BucketToday   Bucket = "today"
	BucketOverdue Bucket = "overdue"
)

var ErrUnknownBucket = errors.New("unknown temporal bucket")

func ParseBucket(raw string) (Bucket, error) {
	switch Bucket(raw) {
	case BucketAll, BucketToday, BucketOverdue:
		return Bucket(raw), nil
	case "":
		return BucketAll, nil
	default:
		return "", ErrUnknownBucket
	}
}

// View is the derived, per-booking classification. It lives for one render
// cycle and is never persisted.
type View struct {
	DaysRemaining int           `json:"days_remaining"`
	State         TemporalState `json:"temporal_state"`
	StartsToday   bool          `json:"starts_today"`
}

const day = 24 * time.Hour

// Classify computes the derived view of a booking at the given instant.
//
// DaysRemaining is the ceiling of (EndDate - now) in days, exact to the
// duration's full resolution: a booking ending 30 minutes from now has one day
// remaining, and one whose end passed less than a full day ago has zero (still
// "ending today", not overdue). Overdue requires a strictly negative count.
func Classify(booking model.Booking, now time.Time) (View, error) {
	if booking.StartDate.IsZero() || booking.EndDate.IsZero() {
		return View{}, ErrInvalidDate
	}

	if booking.EndDate.Before(booking.StartDate) {
		return View{}, ErrInvalidDate
	}

	days := daysRemaining(booking.EndDate, now)

	return View{
		DaysRemaining: days,
		State:         stateFor(days),
		StartsToday:   sameCalendarDay(booking.StartDate, now),
	}, nil
}

func daysRemaining(end, now time.Time) int {
	diff := end.Sub(now)

	days := diff / day
	if diff%day > 0 {
		days++
	}

	return int(days)
}

func stateFor(daysRemaining int) TemporalState {
	switch {
	case daysRemaining < 0:
		return StateOverdue
	case daysRemaining == 0:
		return StateEndingToday
	case daysRemaining == 1:
		return StateEndingTomorrow
	default:
		return StateOnTrack
	}
}

// sameCalendarDay compares calendar dates in the application timezone, not
// elapsed time: bookings two hours apart that straddle midnight differ.
func sameCalendarDay(a, b time.Time) bool {
	aYear, aMonth, aDay := timezone.ToAppTime(a).Date()
	bYear, bMonth, bDay := timezone.ToAppTime(b).Date()

	return aYear == bYear && aMonth == bMonth && aDay == bDay
}

// FilterByBucket keeps the bookings matching the temporal bucket, preserving
// the input's relative order. Lifecycle pre-filtering (confirmed/active only)
// is the caller's responsibility; the two filters compose.
func FilterByBucket(bookings []model.Booking, bucket Bucket, now time.Time) ([]model.Booking, error) {
	if bucket == BucketAll {
		return bookings, nil
	}

	filtered := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		view, err := Classify(booking, now)
		if err != nil {
			return nil, err
		}

		switch bucket {
		case BucketToday:
			if view.StartsToday {
				filtered = append(filtered, booking)
			}
		case BucketOverdue:
			if view.DaysRemaining < 0 {
				filtered = append(filtered, booking)
			}
		default:
			return nil, ErrUnknownBucket
		}
	}

	return filtered, nil
}
