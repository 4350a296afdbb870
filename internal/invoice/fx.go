package invoice

import (
	"github.com/auroradigital/billingdesk/internal/invoice/archive"
	"github.com/auroradigital/billingdesk/internal/invoice/draft"
	"github.com/auroradigital/billingdesk/internal/invoice/render"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(draft.NewForm),
	fx.Provide(archive.New),
	fx.Provide(render.NewRenderer),
)
