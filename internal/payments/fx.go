package payments

import (
	"github.com/auroradigital/billingdesk/internal/payments/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payments.service",
	fx.Provide(service.New),
)
