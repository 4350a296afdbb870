package storage

import (
	"github.com/auroradigital/billingdesk/internal/storage/gormstore"
	"go.uber.org/fx"
)

var Module = fx.Module("storage",
	fx.Provide(gormstore.New),
)
