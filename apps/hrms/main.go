package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/intellious/hrms/internal/clock"
	"github.com/intellious/hrms/internal/config"
	"github.com/intellious/hrms/internal/logger"
	"github.com/intellious/hrms/internal/migration"
	"github.com/intellious/hrms/internal/scheduler"
	"github.com/intellious/hrms/internal/server"
	"github.com/intellious/hrms/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
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
