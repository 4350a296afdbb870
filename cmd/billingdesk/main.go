package main

import (
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/auroradigital/billingdesk/internal/config"
	"github.com/auroradigital/billingdesk/internal/migration"
	"github.com/auroradigital/billingdesk/internal/observability"
	"github.com/auroradigital/billingdesk/internal/server"
	"github.com/auroradigital/billingdesk/internal/storage"
	"github.com/auroradigital/billingdesk/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		storage.Module,
		migration.Module,
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
