package migration

import (
	"github.com/bluedrop/aquarate/internal/config"
	"github.com/bluedrop/aquarate/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		if err := seed.EnsureBaseRate(conn); err != nil {
			return err
		}
		if cfg.SeedDemoData {
			return seed.EnsureDemoCustomer(conn)
		}
		return nil
	}),
)
