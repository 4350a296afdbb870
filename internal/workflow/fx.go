package workflow

import (
	"github.com/auroradigital/billingdesk/internal/workflow/service"
	"github.com/auroradigital/billingdesk/internal/workflow/store"
	"go.uber.org/fx"
)

var Module = fx.Module("workflow.service",
	fx.Provide(store.New),
	fx.Provide(service.New),
)
