package main

import (
	"github.com/bluedrop/aquarate/internal/clock"
	"github.com/bluedrop/aquarate/internal/config"
	"github.com/bluedrop/aquarate/internal/migration"
	"github.com/bluedrop/aquarate/internal/observability"
	"github.com/bluedrop/aquarate/internal/server"
	"github.com/bluedrop/aquarate/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
