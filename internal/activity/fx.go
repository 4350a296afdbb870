package activity

import (
	"github.com/auroradigital/billingdesk/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(service.NewService),
)
