// @title           Atelier API
// @version         1.0
// @description     Atelier studio website & CRM backend

// @contact.name   API Support
// @contact.email  support@studiokit.dev

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/studiokit/atelier/internal/audit"
	"github.com/studiokit/atelier/internal/catalog"
	"github.com/studiokit/atelier/internal/clock"
	"github.com/studiokit/atelier/internal/config"
	"github.com/studiokit/atelier/internal/customer"
	"github.com/studiokit/atelier/internal/intake"
	"github.com/studiokit/atelier/internal/invoice"
	"github.com/studiokit/atelier/internal/ledger"
	"github.com/studiokit/atelier/internal/ledger/reconcile"
	"github.com/studiokit/atelier/internal/migration"
	"github.com/studiokit/atelier/internal/notify"
	"github.com/studiokit/atelier/internal/observability"
	"github.com/studiokit/atelier/internal/payment"
	"github.com/studiokit/atelier/internal/seed"
	"github.com/studiokit/atelier/internal/server"
	"github.com/studiokit/atelier/internal/storage"
	"github.com/studiokit/atelier/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureDefaultCatalog(conn)
		}),

		notify.Module,
		storage.Module,
		audit.Module,
		ledger.Module,
		invoice.Module,
		customer.Module,
		payment.Module,
		intake.Module,
		catalog.Module,
		reconcile.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
