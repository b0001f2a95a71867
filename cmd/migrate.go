package cmd

import (
	"context"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/epicevents/crm-management/internal/client"
	"github.com/epicevents/crm-management/internal/contract"
	"github.com/epicevents/crm-management/internal/event"
	"github.com/epicevents/crm-management/internal/user"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Applique le schéma de base de données",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "annule la dernière migration (postgres uniquement)")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "répertoire des migrations sql")
}

// runMigration runs the goose SQL migrations when targeting postgres;
// the sqlite path, meant for a local single-user install, relies on the
// gorm AutoMigrate of the same models.
func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Database.Driver == "postgres" {
		db, err := goose.OpenDBWithDriver("pgx", cfg.Database.Source)
		if err != nil {
			log.Fatalf("goose: failed to open DB: %v\n", err)
		}
		goose.SetTableName("schema_migrations")

		direction := "up"
		if migrateRollback {
			direction = "down"
		}
		if err := goose.RunContext(ctx, direction, db, migrateDir); err != nil {
			log.Fatalf("goose %s: %v", direction, err)
		}
		return nil
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(
		&user.Role{},
		&user.User{},
		&client.Client{},
		&contract.Contract{},
		&event.Event{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return nil
}
