package service

import (
	"context"
	"strings"
	"time"

	"github.com/teamops/adboard/internal/cache"
	"github.com/teamops/adboard/internal/clock"
	"github.com/teamops/adboard/internal/commission/domain"
	"github.com/teamops/adboard/internal/config"
	"github.com/teamops/adboard/internal/exchange"
	obsmetrics "github.com/teamops/adboard/internal/observability/metrics"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Service is the stable commission pipeline: raw rows in, roster-complete
// results out, with a short-TTL cache in front of every aggregation. Methods
// never fail; fetch errors degrade to flagged, zeroed shapes.
type Service struct {
	log    *zap.Logger
	roster []string
	reader perfdomain.Reader
	rates  exchange.RateSource
	locale language.Tag

	daily    cache.Cache[string, []domain.DailyResult]
	monthly  cache.Cache[string, []domain.MonthlySummary]
	rankings cache.Cache[string, []domain.RankedEntry]
	dates    cache.Cache[string, []string]

	dailyTTL   time.Duration
	monthlyTTL time.Duration
	rankingTTL time.Duration
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Reader perfdomain.Reader
	Rates  exchange.RateSource
}

func New(p ServiceParam) *Service {
	locale := language.Und
	if p.Config.CollationLocale != "" {
		if parsed, err := language.Parse(p.Config.CollationLocale); err == nil {
			locale = parsed
		}
	}

	return &Service{
		log:    p.Log.Named("commission.service"),
		roster: p.Config.Roster,
		reader: p.Reader,
		rates:  p.Rates,
		locale: locale,

		daily:    cache.NewTTLCache[string, []domain.DailyResult](p.Clock, p.Config.DailyTTL),
		monthly:  cache.NewTTLCache[string, []domain.MonthlySummary](p.Clock, p.Config.MonthlyTTL),
		rankings: cache.NewTTLCache[string, []domain.RankedEntry](p.Clock, p.Config.RankingTTL),
		dates:    cache.NewTTLCache[string, []string](p.Clock, p.Config.MonthlyTTL),

		dailyTTL:   p.Config.DailyTTL,
		monthlyTTL: p.Config.MonthlyTTL,
		rankingTTL: p.Config.RankingTTL,
	}
}

func (s *Service) GetDaily(ctx context.Context, date string) []domain.DailyResult {
	normalized, ok := normalizeDate(date)
	if !ok {
		s.log.Warn("invalid date for daily commission", zap.String("date", date))
		return errorDaily(s.roster, strings.TrimSpace(date))
	}

	if results, ok := s.daily.Get(normalized); ok {
		obsmetrics.IncCacheHit("daily")
		return results
	}
	obsmetrics.IncCacheMiss("daily")

	rows, err := s.reader.ListAll(ctx)
	if err != nil {
		// Degrade without caching so the next call retries the fetch.
		obsmetrics.IncFetchFailure()
		s.log.Warn("performance fetch failed", zap.String("date", normalized), zap.Error(err))
		return errorDaily(s.roster, normalized)
	}

	start := time.Now()
	results := computeDaily(s.roster, normalized, rows, s.rates.Rate(ctx))
	obsmetrics.ObserveRecompute("daily", time.Since(start))

	s.daily.Set(normalized, results, s.dailyTTL)
	return results
}

func (s *Service) GetMonthly(ctx context.Context, month string) []domain.MonthlySummary {
	summaries, _ := s.monthlyFor(ctx, month)
	return summaries
}

func (s *Service) GetRankings(ctx context.Context, month string) []domain.RankedEntry {
	normalized, ok := normalizeMonth(month)
	if !ok {
		s.log.Warn("invalid month for rankings", zap.String("month", month))
		return fallbackRanked(s.roster, strings.TrimSpace(month))
	}

	if entries, ok := s.rankings.Get(normalized); ok {
		obsmetrics.IncCacheHit("rankings")
		return entries
	}
	obsmetrics.IncCacheMiss("rankings")

	summaries, ok := s.monthlyFor(ctx, normalized)
	if !ok {
		return fallbackRanked(s.roster, normalized)
	}

	start := time.Now()
	entries := rankEntries(summaries, s.locale)
	obsmetrics.ObserveRecompute("rankings", time.Since(start))

	s.rankings.Set(normalized, entries, s.rankingTTL)
	return entries
}

func (s *Service) AvailableDates(ctx context.Context, month string) []string {
	normalized, ok := normalizeMonth(month)
	if !ok {
		return []string{}
	}

	if dates, ok := s.dates.Get(normalized); ok {
		obsmetrics.IncCacheHit("dates")
		return dates
	}
	obsmetrics.IncCacheMiss("dates")

	rows, err := s.reader.ListAll(ctx)
	if err != nil {
		obsmetrics.IncFetchFailure()
		s.log.Warn("performance fetch failed", zap.String("month", normalized), zap.Error(err))
		return []string{}
	}

	dates := availableDates(normalized, rows)
	s.dates.Set(normalized, dates, s.monthlyTTL)
	return dates
}

// ForceRefresh drops the cached aggregates for date and/or month; with both
// arguments empty it clears every cache.
func (s *Service) ForceRefresh(date, month string) {
	date = strings.TrimSpace(date)
	month = strings.TrimSpace(month)

	if date == "" && month == "" {
		s.daily.Clear()
		s.monthly.Clear()
		s.rankings.Clear()
		s.dates.Clear()
		return
	}
	if date != "" {
		s.daily.Invalidate(date)
	}
	if month != "" {
		s.monthly.Invalidate(month)
		s.rankings.Invalidate(month)
		s.dates.Invalidate(month)
	}
}

// RecordChanged implements the performance write hook: a changed row makes the
// cached aggregates for its day and month stale.
func (s *Service) RecordChanged(date string) {
	s.ForceRefresh(date, monthOf(date))
}

// monthlyFor reports ok=false only when the underlying fetch failed, so
// callers can distinguish "no data" from "degraded".
func (s *Service) monthlyFor(ctx context.Context, month string) ([]domain.MonthlySummary, bool) {
	normalized, ok := normalizeMonth(month)
	if !ok {
		s.log.Warn("invalid month for monthly commission", zap.String("month", month))
		return zeroMonthly(s.roster, strings.TrimSpace(month)), false
	}

	if summaries, ok := s.monthly.Get(normalized); ok {
		obsmetrics.IncCacheHit("monthly")
		return summaries, true
	}
	obsmetrics.IncCacheMiss("monthly")

	rows, err := s.reader.ListAll(ctx)
	if err != nil {
		obsmetrics.IncFetchFailure()
		s.log.Warn("performance fetch failed", zap.String("month", normalized), zap.Error(err))
		return zeroMonthly(s.roster, normalized), false
	}

	start := time.Now()
	summaries := computeMonthly(s.roster, normalized, rows, s.rates.Rate(ctx))
	obsmetrics.ObserveRecompute("monthly", time.Since(start))

	s.monthly.Set(normalized, summaries, s.monthlyTTL)
	return summaries, true
}

func normalizeDate(raw string) (string, bool) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

func normalizeMonth(raw string) (string, bool) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01"), true
}

func monthOf(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}
