package scheduler

import (
	"context"
	"time"

	"github.com/teamops/adboard/internal/clock"
	commissiondomain "github.com/teamops/adboard/internal/commission/domain"
	appconfig "github.com/teamops/adboard/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler keeps the hot dashboard views warm: today's daily commission and
// the current month's rankings are recomputed before their TTLs lapse, so
// interactive reads rarely pay the aggregation cost.
type Scheduler struct {
	log           *zap.Logger
	cfg           Config
	clock         clock.Clock
	commissionSvc commissiondomain.Service

	cancel context.CancelFunc
	done   chan struct{}
}

type Params struct {
	fx.In

	Log           *zap.Logger
	Clock         clock.Clock
	CommissionSvc commissiondomain.Service
	Config        Config `optional:"true"`
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:           p.Log.Named("scheduler"),
		cfg:           p.Config.withDefaults(),
		clock:         p.Clock,
		commissionSvc: p.CommissionSvc,
	}
}

// RunOnce warms the caches for the current day and month.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	now := s.clock.Now()
	date := now.Format("2006-01-02")
	month := now.Format("2006-01")

	s.commissionSvc.GetDaily(ctx, date)
	s.commissionSvc.GetRankings(ctx, month)

	s.log.Debug("caches warmed",
		zap.String("date", date),
		zap.String("month", month),
	)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.WarmInterval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

func registerHooks(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			s.cancel = cancel
			s.done = make(chan struct{})
			go s.loop(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s.cancel != nil {
				s.cancel()
			}
			select {
			case <-s.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func provideConfig(cfg appconfig.Config) Config {
	return Config{WarmInterval: cfg.WarmInterval}
}

var Module = fx.Module("scheduler",
	fx.Provide(
		provideConfig,
		New,
	),
	fx.Invoke(registerHooks),
)
