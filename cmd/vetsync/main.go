package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/logger"
	"github.com/omarwahbi/VetSync-sub002/internal/migration"
	"github.com/omarwahbi/VetSync-sub002/internal/server"
	"github.com/omarwahbi/VetSync-sub002/pkg/db"
)

func main() {
	app := fx.New(
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
