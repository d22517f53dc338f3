package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/teamops/adboard/internal/clock"
	"github.com/teamops/adboard/internal/commission"
	"github.com/teamops/adboard/internal/config"
	"github.com/teamops/adboard/internal/exchange"
	"github.com/teamops/adboard/internal/logger"
	"github.com/teamops/adboard/internal/migration"
	"github.com/teamops/adboard/internal/performance"
	"github.com/teamops/adboard/internal/scheduler"
	"github.com/teamops/adboard/internal/server"
	"github.com/teamops/adboard/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		exchange.Module,
		performance.Module,
		commission.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
