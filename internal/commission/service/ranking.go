package service

import (
	"math"
	"sort"

	"github.com/teamops/adboard/internal/commission/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Differences below these thresholds are treated as ties so floating-point
// jitter cannot reorder the leaderboard between recomputes.
const (
	commissionEpsilon = 0.01
	roiEpsilon        = 0.0001
)

// rankEntries produces a total order over the summaries: commission desc,
// orders desc, average ROI desc, working days desc, then name ascending under
// locale-aware collation. The name key guarantees totality, so repeated calls
// on the same data produce identical output.
func rankEntries(summaries []domain.MonthlySummary, locale language.Tag) []domain.RankedEntry {
	coll := collate.New(locale)

	entries := make([]domain.RankedEntry, 0, len(summaries))
	for _, summary := range summaries {
		entries = append(entries, domain.RankedEntry{MonthlySummary: summary})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return rankLess(entries[i].MonthlySummary, entries[j].MonthlySummary, coll)
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].RankInfo = domain.RankInfoFor(i + 1)
	}
	return entries
}

func rankLess(a, b domain.MonthlySummary, coll *collate.Collator) bool {
	if diff := a.TotalCommission - b.TotalCommission; math.Abs(diff) >= commissionEpsilon {
		return diff > 0
	}
	if a.TotalOrders != b.TotalOrders {
		return a.TotalOrders > b.TotalOrders
	}
	if diff := a.AvgROI - b.AvgROI; math.Abs(diff) >= roiEpsilon {
		return diff > 0
	}
	if a.WorkingDays != b.WorkingDays {
		return a.WorkingDays > b.WorkingDays
	}
	return coll.CompareString(a.Staff, b.Staff) < 0
}

// fallbackRanked is the degraded leaderboard when the monthly summary cannot
// be computed: zeroed stats, ranks assigned in roster order.
func fallbackRanked(roster []string, month string) []domain.RankedEntry {
	entries := make([]domain.RankedEntry, 0, len(roster))
	for i, staff := range roster {
		entries = append(entries, domain.RankedEntry{
			MonthlySummary: domain.MonthlySummary{Staff: staff, Month: month},
			Rank:           i + 1,
			RankInfo:       domain.RankInfoFor(i + 1),
		})
	}
	return entries
}
