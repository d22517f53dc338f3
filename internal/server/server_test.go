package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/adboard/internal/clock"
	commissionservice "github.com/teamops/adboard/internal/commission/service"
	"github.com/teamops/adboard/internal/config"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
	perfrepository "github.com/teamops/adboard/internal/performance/repository"
	perfservice "github.com/teamops/adboard/internal/performance/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixedRate float64

func (r fixedRate) Rate(ctx context.Context) float64 { return float64(r) }

func setupTestServer(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&perfdomain.Record{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	repo := perfrepository.Provide(db)

	commissionSvc := commissionservice.New(commissionservice.ServiceParam{
		Log:    log,
		Config: cfg,
		Clock:  clock.NewSystemClock(),
		Reader: repo,
		Rates:  fixedRate(20.0),
	})

	perfSvc := perfservice.New(perfservice.ServiceParam{
		Log:         log,
		Repo:        repo,
		GenID:       node,
		Invalidator: commissionSvc,
	})

	engine := NewEngine(cfg, log)
	s := NewServer(Params{
		Engine:        engine,
		Config:        cfg,
		Log:           log,
		Performance:   perfSvc,
		CommissionSvc: commissionSvc,
	})
	registerRoutes(s)
	return engine
}

func testServerConfig() config.Config {
	return config.Config{
		Roster:     []string{"amber", "bella", "cindy"},
		DailyTTL:   2 * time.Minute,
		MonthlyTTL: 10 * time.Minute,
		RankingTTL: 8 * time.Minute,
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRecordAndDailyCommissionFlow(t *testing.T) {
	engine := setupTestServer(t, testServerConfig())

	w := doJSON(t, engine, http.MethodPost, "/v1/records",
		`{"staff":"amber","date":"2026-08-15","ad_spend":"100","credit_card_amount":2200,"credit_card_orders":"10"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodPost, "/v1/records",
		`{"staff":"bella","date":"2026-08-15","ad_spend":50,"credit_card_amount":1000,"credit_card_orders":5}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/commission/daily?date=2026-08-15", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			Staff           string  `json:"staff"`
			ROI             float64 `json:"roi"`
			TotalCommission float64 `json:"total_commission"`
			Status          string  `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "amber", resp.Results[0].Staff)
	assert.Equal(t, 1.1, resp.Results[0].ROI)
	assert.Equal(t, 70.0, resp.Results[0].TotalCommission)
	assert.Equal(t, "high_performance", resp.Results[0].Status)
	assert.Equal(t, 35.0, resp.Results[1].TotalCommission)
	assert.Equal(t, "no_data", resp.Results[2].Status)
}

func TestRankingsEndpoint(t *testing.T) {
	engine := setupTestServer(t, testServerConfig())

	doJSON(t, engine, http.MethodPost, "/v1/records",
		`{"staff":"bella","date":"2026-08-15","ad_spend":100,"credit_card_amount":2200,"credit_card_orders":10}`, nil)

	w := doJSON(t, engine, http.MethodGet, "/v1/commission/rankings?month=2026-08", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rankings []struct {
			Staff    string `json:"staff"`
			Rank     int    `json:"rank"`
			RankInfo struct {
				Title string `json:"title"`
			} `json:"rank_info"`
		} `json:"rankings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rankings, 3)
	assert.Equal(t, "bella", resp.Rankings[0].Staff)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "Gold Star", resp.Rankings[0].RankInfo.Title)
}

func TestWriteInvalidatesCommissionCache(t *testing.T) {
	engine := setupTestServer(t, testServerConfig())

	w := doJSON(t, engine, http.MethodGet, "/v1/commission/daily?date=2026-08-15", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "no_data")

	doJSON(t, engine, http.MethodPost, "/v1/records",
		`{"staff":"amber","date":"2026-08-15","ad_spend":100,"credit_card_amount":2200,"credit_card_orders":10}`, nil)

	// The cached empty day was dropped by the write.
	w = doJSON(t, engine, http.MethodGet, "/v1/commission/daily?date=2026-08-15", "", nil)
	assert.Contains(t, w.Body.String(), "high_performance")
}

func TestRefreshEndpoint(t *testing.T) {
	engine := setupTestServer(t, testServerConfig())

	w := doJSON(t, engine, http.MethodPost, "/v1/commission/refresh", `{"date":"2026-08-15"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/v1/commission/refresh", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidationErrors(t *testing.T) {
	engine := setupTestServer(t, testServerConfig())

	w := doJSON(t, engine, http.MethodPost, "/v1/records",
		`{"staff":"","date":"2026-08-15"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/commission/daily", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/records/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardTokenAuth(t *testing.T) {
	cfg := testServerConfig()
	cfg.DashboardToken = "sekret"
	engine := setupTestServer(t, cfg)

	w := doJSON(t, engine, http.MethodGet, "/v1/commission/daily?date=2026-08-15", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/v1/commission/daily?date=2026-08-15", "",
		map[string]string{"X-Dashboard-Token": "sekret"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open.
	w = doJSON(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
