package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	commissiondomain "github.com/teamops/adboard/internal/commission/domain"
	"github.com/teamops/adboard/internal/config"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(
		registerRoutes,
		run,
	),
)

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	performance   perfdomain.Service
	commissionSvc commissiondomain.Service
}

type Params struct {
	fx.In

	Engine        *gin.Engine
	Config        config.Config
	Log           *zap.Logger
	Performance   perfdomain.Service
	CommissionSvc commissiondomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		engine:        p.Engine,
		cfg:           p.Config,
		log:           p.Log.Named("http.server"),
		performance:   p.Performance,
		commissionSvc: p.CommissionSvc,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerRoutes(s *Server) {
	v1 := s.engine.Group("/v1")
	v1.Use(s.TokenAuth())

	records := v1.Group("/records")
	records.GET("", s.ListRecords)
	records.POST("", s.CreateRecord)
	records.GET("/:id", s.GetRecord)
	records.PUT("/:id", s.UpdateRecord)
	records.DELETE("/:id", s.DeleteRecord)

	commission := v1.Group("/commission")
	commission.GET("/daily", s.GetDailyCommission)
	commission.GET("/monthly", s.GetMonthlyCommission)
	commission.GET("/rankings", s.GetRankings)
	commission.GET("/available-dates", s.GetAvailableDates)
	commission.POST("/refresh", s.RefreshCommission)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
