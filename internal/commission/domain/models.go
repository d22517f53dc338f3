package domain

// Status describes how a daily commission figure was produced.
type Status string

const (
	// StatusNoData: the advertiser had no orders that day.
	StatusNoData Status = "no_data"
	// StatusHighPerformance: ROI reached the top payout tier.
	StatusHighPerformance Status = "high_performance"
	// StatusQualified: ROI reached the base payout tier.
	StatusQualified Status = "qualified"
	// StatusNoCommission: orders exist but ROI fell below every payout tier.
	StatusNoCommission Status = "no_commission"
	// StatusError: the raw rows could not be fetched; all figures are zero.
	StatusError Status = "error"
)

// Payout tiers. CommissionPerOrder is always one of {0, 5, 7}.
const (
	TierHighROI      = 1.0
	TierQualifiedROI = 0.8

	PayoutHigh      = 7.0
	PayoutQualified = 5.0
)

// DailyResult is the aggregated commission figure for one advertiser on one day.
type DailyResult struct {
	Staff              string  `json:"staff"`
	Date               string  `json:"date"`
	OrderCount         int64   `json:"order_count"`
	Spend              float64 `json:"spend"`
	Revenue            float64 `json:"revenue"` // collected amount converted into spend currency
	ROI                float64 `json:"roi"`     // rounded half-up to 4 decimals
	CommissionPerOrder float64 `json:"commission_per_order"`
	TotalCommission    float64 `json:"total_commission"` // rounded half-up to 2 decimals
	Status             Status  `json:"status"`
}

// MonthlySummary folds DailyResults across every day of a month that has data.
type MonthlySummary struct {
	Staff           string  `json:"staff"`
	Month           string  `json:"month"` // YYYY-MM
	TotalCommission float64 `json:"total_commission"`
	TotalOrders     int64   `json:"total_orders"`
	WorkingDays     int     `json:"working_days"`
	AvgROI          float64 `json:"avg_roi"`
}

// RankedEntry is a MonthlySummary with its leaderboard position.
type RankedEntry struct {
	MonthlySummary
	Rank     int      `json:"rank"`
	RankInfo RankInfo `json:"rank_info"`
}

// RankInfo is static metadata keyed purely by rank position, never by identity.
type RankInfo struct {
	Title  string `json:"title"`
	Reward string `json:"reward"`
}

var rankInfoTable = map[int]RankInfo{
	1: {Title: "Gold Star", Reward: "monthly bonus + featured seat"},
	2: {Title: "Silver Star", Reward: "monthly bonus"},
	3: {Title: "Bronze Star", Reward: "team shout-out"},
}

var rankInfoDefault = RankInfo{Title: "Contender", Reward: "keep pushing"}

// RankInfoFor returns the tier metadata for a 1-based rank.
func RankInfoFor(rank int) RankInfo {
	if info, ok := rankInfoTable[rank]; ok {
		return info
	}
	return rankInfoDefault
}
