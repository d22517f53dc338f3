package service

import (
	"math"
	"sort"
	"strings"

	"github.com/teamops/adboard/internal/commission/domain"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
)

// round2 and round4 use half-up rounding throughout; UI-level truncation is a
// presentation concern and never feeds back into these figures.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

type aggregate struct {
	spend     float64
	collected float64
	orders    int64
}

// tierFor picks the payout tier from the raw (unrounded) ROI ratio. Rounding
// the ratio first would promote e.g. 0.99995 into the top tier.
func tierFor(orders int64, roi float64) (float64, domain.Status) {
	if orders <= 0 {
		return 0, domain.StatusNoData
	}
	switch {
	case roi >= domain.TierHighROI:
		return domain.PayoutHigh, domain.StatusHighPerformance
	case roi >= domain.TierQualifiedROI:
		return domain.PayoutQualified, domain.StatusQualified
	default:
		return 0, domain.StatusNoCommission
	}
}

func dailyFor(staff, date string, agg *aggregate, rate float64) domain.DailyResult {
	if agg == nil {
		agg = &aggregate{}
	}

	revenue := agg.collected / rate
	var roi float64
	if agg.spend > 0 {
		roi = revenue / agg.spend
	}
	perOrder, status := tierFor(agg.orders, roi)

	return domain.DailyResult{
		Staff:              staff,
		Date:               date,
		OrderCount:         agg.orders,
		Spend:              round2(agg.spend),
		Revenue:            round2(revenue),
		ROI:                round4(roi),
		CommissionPerOrder: perOrder,
		TotalCommission:    round2(float64(agg.orders) * perOrder),
		Status:             status,
	}
}

// computeDaily aggregates raw rows for one day into one DailyResult per roster
// member, in roster order. Rows for staff outside the roster are ignored.
func computeDaily(roster []string, date string, rows []perfdomain.Record, rate float64) []domain.DailyResult {
	byStaff := make(map[string]*aggregate)
	for _, row := range rows {
		if row.Date != date {
			continue
		}
		key := normalizeStaff(row.Staff)
		agg := byStaff[key]
		if agg == nil {
			agg = &aggregate{}
			byStaff[key] = agg
		}
		agg.spend += row.AdSpend
		agg.collected += row.CreditCardAmount
		agg.orders += row.CreditCardOrders
	}

	results := make([]domain.DailyResult, 0, len(roster))
	for _, staff := range roster {
		results = append(results, dailyFor(staff, date, byStaff[normalizeStaff(staff)], rate))
	}
	return results
}

// computeMonthly folds per-day results across every day of the month that has
// data for the member. Days are visited in sorted order so float accumulation
// is reproducible call to call.
func computeMonthly(roster []string, month string, rows []perfdomain.Record, rate float64) []domain.MonthlySummary {
	prefix := month + "-"
	byStaff := make(map[string]map[string]*aggregate)
	for _, row := range rows {
		if !strings.HasPrefix(row.Date, prefix) {
			continue
		}
		key := normalizeStaff(row.Staff)
		days := byStaff[key]
		if days == nil {
			days = make(map[string]*aggregate)
			byStaff[key] = days
		}
		agg := days[row.Date]
		if agg == nil {
			agg = &aggregate{}
			days[row.Date] = agg
		}
		agg.spend += row.AdSpend
		agg.collected += row.CreditCardAmount
		agg.orders += row.CreditCardOrders
	}

	summaries := make([]domain.MonthlySummary, 0, len(roster))
	for _, staff := range roster {
		summary := domain.MonthlySummary{Staff: staff, Month: month}

		days := byStaff[normalizeStaff(staff)]
		dates := make([]string, 0, len(days))
		for date := range days {
			dates = append(dates, date)
		}
		sort.Strings(dates)

		var total, roiSum float64
		for _, date := range dates {
			daily := dailyFor(staff, date, days[date], rate)
			total += daily.TotalCommission
			summary.TotalOrders += daily.OrderCount
			if daily.OrderCount > 0 || daily.TotalCommission > 0 {
				summary.WorkingDays++
			}
			roiSum += daily.ROI
		}
		summary.TotalCommission = round2(total)
		if len(dates) > 0 {
			summary.AvgROI = round4(roiSum / float64(len(dates)))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// availableDates lists the distinct dates in month with any rows, newest first.
func availableDates(month string, rows []perfdomain.Record) []string {
	prefix := month + "-"
	seen := make(map[string]struct{})
	for _, row := range rows {
		if strings.HasPrefix(row.Date, prefix) {
			seen[row.Date] = struct{}{}
		}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// errorDaily is the degraded shape when raw rows cannot be fetched: the full
// roster with zeroed figures, flagged rather than thrown.
func errorDaily(roster []string, date string) []domain.DailyResult {
	results := make([]domain.DailyResult, 0, len(roster))
	for _, staff := range roster {
		results = append(results, domain.DailyResult{
			Staff:  staff,
			Date:   date,
			Status: domain.StatusError,
		})
	}
	return results
}

func zeroMonthly(roster []string, month string) []domain.MonthlySummary {
	summaries := make([]domain.MonthlySummary, 0, len(roster))
	for _, staff := range roster {
		summaries = append(summaries, domain.MonthlySummary{Staff: staff, Month: month})
	}
	return summaries
}

func normalizeStaff(staff string) string {
	return strings.ToLower(strings.TrimSpace(staff))
}
