package exchange

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/teamops/adboard/internal/cache"
	"github.com/teamops/adboard/internal/clock"
	"github.com/teamops/adboard/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DefaultRate is the static B-per-A conversion constant. Commission math uses
// it whenever no live rate is configured or the live fetch fails.
const DefaultRate = 20.0

const cacheKey = "rate"

// RateSource supplies the conversion rate. Implementations must never fail;
// best effort resolves to a positive constant.
type RateSource interface {
	Rate(ctx context.Context) float64
}

type Service struct {
	log      *zap.Logger
	client   *http.Client
	url      string
	fallback float64
	rates    cache.Cache[string, float64]
	ttl      time.Duration
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
}

func New(p ServiceParam) *Service {
	fallback := p.Config.ExchangeRate
	if fallback <= 0 {
		fallback = DefaultRate
	}
	return &Service{
		log:      p.Log.Named("exchange.service"),
		client:   &http.Client{Timeout: 5 * time.Second},
		url:      p.Config.ExchangeRateURL,
		fallback: fallback,
		rates:    cache.NewTTLCache[string, float64](p.Clock, p.Config.ExchangeTTL),
		ttl:      p.Config.ExchangeTTL,
	}
}

type rateResponse struct {
	Rate float64 `json:"rate"`
}

// Rate returns the cached live rate when one is configured and reachable, and
// the fallback constant otherwise. It never returns a non-positive value.
func (s *Service) Rate(ctx context.Context) float64 {
	if s.url == "" {
		return s.fallback
	}
	if rate, ok := s.rates.Get(cacheKey); ok {
		return rate
	}

	rate, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("live exchange rate unavailable, using fallback",
			zap.Float64("fallback", s.fallback),
			zap.Error(err),
		)
		return s.fallback
	}

	s.rates.Set(cacheKey, rate, s.ttl)
	return rate
}

func (s *Service) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errUnexpectedStatus(resp.StatusCode)
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}
	if payload.Rate <= 0 {
		return 0, errInvalidRate
	}
	return payload.Rate, nil
}
