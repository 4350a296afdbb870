package migration

import (
	activitydomain "github.com/auroradigital/billingdesk/internal/activity/domain"
	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/auroradigital/billingdesk/internal/config"
	paymentsdomain "github.com/auroradigital/billingdesk/internal/payments/domain"
	"github.com/auroradigital/billingdesk/internal/seed"
	storagedomain "github.com/auroradigital/billingdesk/internal/storage/domain"
	workflowstore "github.com/auroradigital/billingdesk/internal/workflow/store"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, ledger *workflowstore.Store, clk clock.Clock) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&storagedomain.Entry{},
				&catalogdomain.Organization{},
				&catalogdomain.Service{},
				&catalogdomain.ClientProfile{},
				&activitydomain.Entry{},
				&paymentsdomain.GatewayProfile{},
				&paymentsdomain.Channel{},
				&paymentsdomain.Transaction{},
			); err != nil {
				return err
			}
		}

		if err := seed.Ensure(conn); err != nil {
			return err
		}
		seed.EnsureLedger(ledger, clk)
		return nil
	}),
)
