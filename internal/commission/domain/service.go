package domain

import "context"

// Service is the stable commission pipeline. None of its methods return an
// error: every failure degrades to a roster-complete, clearly flagged result so
// the display layer always has a renderable shape.
type Service interface {
	// GetDaily returns one DailyResult per roster member for date (YYYY-MM-DD).
	GetDaily(ctx context.Context, date string) []DailyResult
	// GetMonthly returns one MonthlySummary per roster member for month (YYYY-MM).
	GetMonthly(ctx context.Context, month string) []MonthlySummary
	// GetRankings returns the full roster sorted and ranked for month.
	GetRankings(ctx context.Context, month string) []RankedEntry
	// AvailableDates lists the ISO dates in month with any data, newest first.
	AvailableDates(ctx context.Context, month string) []string
	// ForceRefresh drops the caches for date and/or month. With both arguments
	// empty it clears everything.
	ForceRefresh(date, month string)
}
