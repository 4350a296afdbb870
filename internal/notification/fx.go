package notification

import (
	"github.com/auroradigital/billingdesk/internal/notification/store"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.store",
	fx.Provide(store.New),
)
