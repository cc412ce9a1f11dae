package migration

import (
	auditdomain "github.com/intellious/hrms/internal/audit/domain"
	authdomain "github.com/intellious/hrms/internal/auth/domain"
	"github.com/intellious/hrms/internal/config"
	documentdomain "github.com/intellious/hrms/internal/document/domain"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	projectdomain "github.com/intellious/hrms/internal/project/domain"
	"github.com/intellious/hrms/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// sqlite is only used for local development and tests where the
		// versioned SQL files do not apply.
		if cfg.DBType == "sqlite" {
			err := conn.AutoMigrate(
				&employeedomain.Employee{},
				&authdomain.OTPLog{},
				&projectdomain.Project{},
				&projectdomain.Assignment{},
				&documentdomain.Document{},
				&auditdomain.AuditLog{},
			)
			if err != nil {
				return err
			}
		} else {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
				return err
			}
		}

		if cfg.SeedDefaultAdmin {
			return seed.EnsureDefaultAdmin(conn, cfg.DefaultAdminEmail)
		}
		return nil
	}),
)
