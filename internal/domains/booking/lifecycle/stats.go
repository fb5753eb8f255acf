package lifecycle

import (
	"slices"
	"time"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
)

// endingSoonHorizonDays bounds the "ending soon" counter: zero to two days out.
const endingSoonHorizonDays = 2

// Stats are the aggregate counters for the dashboard stat cards, computed over
// one snapshot with one clock reading.
type Stats struct {
	Total             int   `json:"total"`
	TodayCount        int   `json:"today_count"`
	OverdueCount      int   `json:"overdue_count"`
	EndingSoonCount   int   `json:"ending_soon_count"`
	RevenueTotalCents int64 `json:"revenue_total_cents"`
}

// ComputeStats aggregates the snapshot in a single pass. Revenue only sums
// bookings whose lifecycle status is in the caller-supplied subset, because
// different panels define revenue differently (gross vs confirmed-only).
// An empty snapshot yields all-zero stats.
func ComputeStats(bookings []model.Booking, now time.Time, revenueStatuses []model.Status) (Stats, error) {
	var stats Stats

	stats.Total = len(bookings)

	for _, booking := range bookings {
		view, err := Classify(booking, now)
		if err != nil {
			return Stats{}, err
		}

		if view.StartsToday {
			stats.TodayCount++
		}

		if view.State == StateOverdue {
			stats.OverdueCount++
		}

		if view.DaysRemaining >= 0 && view.DaysRemaining <= endingSoonHorizonDays {
			stats.EndingSoonCount++
		}

		if slices.Contains(revenueStatuses, booking.Status) {
			stats.RevenueTotalCents += booking.TotalPriceCents
		}
	}

	return stats, nil
}

// Percentage returns part as a share of whole in percent, defined as zero for
// an empty whole rather than NaN or a division error.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}
