package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	authdomain "github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/config"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/seed"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql run in dev mode without versioned
			// migrations.
			if err := conn.AutoMigrate(
				&clinicdomain.Clinic{},
				&authdomain.User{},
				&authdomain.Session{},
				&ownerdomain.Owner{},
				&petdomain.Pet{},
				&visitdomain.Visit{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultClinicAndAdmin(conn, cfg)
	}),
)
