package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/teamops/adboard/internal/clock"
	"github.com/teamops/adboard/internal/commission/domain"
	"github.com/teamops/adboard/internal/config"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
	"go.uber.org/zap"
)

type stubReader struct {
	rows  []perfdomain.Record
	err   error
	calls int
}

func (r *stubReader) ListAll(ctx context.Context) ([]perfdomain.Record, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

type fixedRate float64

func (r fixedRate) Rate(ctx context.Context) float64 { return float64(r) }

func testConfig(roster ...string) config.Config {
	return config.Config{
		Roster:     roster,
		DailyTTL:   2 * time.Minute,
		MonthlyTTL: 10 * time.Minute,
		RankingTTL: 8 * time.Minute,
	}
}

func newTestService(reader *stubReader, clk clock.Clock, roster ...string) *Service {
	return New(ServiceParam{
		Log:    zap.NewNop(),
		Config: testConfig(roster...),
		Clock:  clk,
		Reader: reader,
		Rates:  fixedRate(20.0),
	})
}

func TestGetDailyCachesResult(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{rows: []perfdomain.Record{
		record("a", "2026-08-15", 100, 2200, 10),
	}}
	svc := newTestService(reader, clk, "a", "b")
	ctx := context.Background()

	first := svc.GetDaily(ctx, "2026-08-15")
	assert.Equal(t, 70.0, first[0].TotalCommission)
	assert.Equal(t, 1, reader.calls)

	// Within TTL the fetch is not repeated.
	svc.GetDaily(ctx, "2026-08-15")
	assert.Equal(t, 1, reader.calls)

	// Past TTL the result is recomputed.
	clk.Advance(3 * time.Minute)
	svc.GetDaily(ctx, "2026-08-15")
	assert.Equal(t, 2, reader.calls)
}

func TestGetDailyFetchFailure(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{err: errors.New("connection refused")}
	svc := newTestService(reader, clk, "a", "b", "c")

	results := svc.GetDaily(context.Background(), "2026-08-15")
	assert.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, domain.StatusError, r.Status)
	}

	// Error results are not cached; the next call retries.
	svc.GetDaily(context.Background(), "2026-08-15")
	assert.Equal(t, 2, reader.calls)
}

func TestGetDailyInvalidDate(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{}
	svc := newTestService(reader, clk, "a")

	results := svc.GetDaily(context.Background(), "not-a-date")
	assert.Len(t, results, 1)
	assert.Equal(t, domain.StatusError, results[0].Status)
	assert.Equal(t, 0, reader.calls)
}

func TestGetMonthlyRosterComplete(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{} // no rows at all
	svc := newTestService(reader, clk, "a", "b", "c", "d")

	summaries := svc.GetMonthly(context.Background(), "2026-08")
	assert.Len(t, summaries, 4)
	for _, s := range summaries {
		assert.Equal(t, "2026-08", s.Month)
		assert.Equal(t, 0.0, s.TotalCommission)
	}
}

func TestGetRankingsScenario(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{rows: []perfdomain.Record{
		record("a", "2026-08-15", 100, 2200, 10),
		record("b", "2026-08-15", 50, 1000, 5),
	}}
	svc := newTestService(reader, clk, "a", "b", "c")

	rankings := svc.GetRankings(context.Background(), "2026-08")
	assert.Len(t, rankings, 3)
	assert.Equal(t, "a", rankings[0].Staff)
	assert.Equal(t, 70.0, rankings[0].TotalCommission)
	assert.Equal(t, "b", rankings[1].Staff)
	assert.Equal(t, 35.0, rankings[1].TotalCommission)
	assert.Equal(t, "c", rankings[2].Staff)
	assert.Equal(t, 3, rankings[2].Rank)
}

func TestGetRankingsDeterministic(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{rows: []perfdomain.Record{
		record("a", "2026-08-15", 100, 2000, 10),
		record("b", "2026-08-15", 100, 2000, 10),
		record("c", "2026-08-15", 100, 2000, 10),
	}}
	svc := newTestService(reader, clk, "c", "b", "a")

	first := svc.GetRankings(context.Background(), "2026-08")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, svc.GetRankings(context.Background(), "2026-08"))
	}
	// Full numeric tie resolves by name, not roster order.
	assert.Equal(t, "a", first[0].Staff)
}

func TestGetRankingsFetchFailure(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{err: errors.New("boom")}
	svc := newTestService(reader, clk, "zeta", "alpha")

	rankings := svc.GetRankings(context.Background(), "2026-08")
	assert.Len(t, rankings, 2)
	// Degraded rankings keep roster order, not name order.
	assert.Equal(t, "zeta", rankings[0].Staff)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "alpha", rankings[1].Staff)
	assert.Equal(t, 2, rankings[1].Rank)
}

func TestAvailableDatesDescending(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{rows: []perfdomain.Record{
		record("a", "2026-08-01", 1, 1, 1),
		record("a", "2026-08-10", 1, 1, 1),
		record("b", "2026-08-05", 1, 1, 1),
	}}
	svc := newTestService(reader, clk, "a", "b")

	dates := svc.AvailableDates(context.Background(), "2026-08")
	assert.Equal(t, []string{"2026-08-10", "2026-08-05", "2026-08-01"}, dates)

	// Cached on second read.
	svc.AvailableDates(context.Background(), "2026-08")
	assert.Equal(t, 1, reader.calls)
}

func TestForceRefresh(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{rows: []perfdomain.Record{
		record("a", "2026-08-15", 100, 2200, 10),
	}}
	svc := newTestService(reader, clk, "a")
	ctx := context.Background()

	svc.GetDaily(ctx, "2026-08-15")
	svc.GetMonthly(ctx, "2026-08")
	assert.Equal(t, 2, reader.calls)

	// Date-scoped refresh drops only the daily entry.
	svc.ForceRefresh("2026-08-15", "")
	svc.GetDaily(ctx, "2026-08-15")
	svc.GetMonthly(ctx, "2026-08")
	assert.Equal(t, 3, reader.calls)

	// Clearing everything forces both recomputes.
	svc.ForceRefresh("", "")
	svc.GetDaily(ctx, "2026-08-15")
	svc.GetMonthly(ctx, "2026-08")
	assert.Equal(t, 5, reader.calls)
}

func TestRecordChangedInvalidatesDayAndMonth(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	reader := &stubReader{rows: []perfdomain.Record{
		record("a", "2026-08-15", 100, 2200, 10),
	}}
	svc := newTestService(reader, clk, "a")
	ctx := context.Background()

	svc.GetDaily(ctx, "2026-08-15")
	svc.GetRankings(ctx, "2026-08")
	calls := reader.calls

	svc.RecordChanged("2026-08-15")

	svc.GetDaily(ctx, "2026-08-15")
	svc.GetRankings(ctx, "2026-08")
	assert.Equal(t, calls+2, reader.calls)
}
