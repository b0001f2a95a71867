package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/auth"
	"github.com/epicevents/crm-management/internal/client"
	clientstore "github.com/epicevents/crm-management/internal/client/store"
	"github.com/epicevents/crm-management/internal/contract"
	contractstore "github.com/epicevents/crm-management/internal/contract/store"
	"github.com/epicevents/crm-management/internal/event"
	eventstore "github.com/epicevents/crm-management/internal/event/store"
	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
	userstore "github.com/epicevents/crm-management/internal/user/store"
	"github.com/epicevents/crm-management/internal/view"
	"github.com/epicevents/crm-management/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "Epic Events CRM",
	Long:  `Gestion des clients, contrats et événements d'Epic Events.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	if os.Getenv("APP_ENV") == "production" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

// App holds the wired services for one command invocation. There are no
// package-level singletons: the secret, the database handle and the
// session manager all live here.
type App struct {
	Config    *internal.Config
	DB        *gorm.DB
	Console   *view.Console
	Auth      *auth.Service
	Users     *user.Service
	Clients   *client.Service
	Contracts *contract.Service
	Events    *event.Service
}

func initApp() (*App, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Observability.Environment)
	log := logger.L()

	db, err := openDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	console := view.NewConsole()
	authz := rbac.NewAuthorizer(log)

	userRepo := userstore.NewUserRepository(db)
	clientRepo := clientstore.NewClientRepository(db)
	contractRepo := contractstore.NewContractRepository(db)
	eventRepo := eventstore.NewEventRepository(db)

	tokens := auth.NewTokenGenerator(cfg.Security.SessionSecret, cfg.Security.TokenDuration, log)
	tokenStore := auth.NewFileTokenStore(cfg.Security.TokenFile)

	return &App{
		Config:    cfg,
		DB:        db,
		Console:   console,
		Auth:      auth.NewService(userRepo, tokens, tokenStore, console, log),
		Users:     user.NewService(userRepo, clientRepo, authz, console, log, cfg.Security.BCryptCost),
		Clients:   client.NewService(clientRepo, authz, console, log),
		Contracts: contract.NewService(contractRepo, clientRepo, authz, console, log),
		Events:    event.NewService(eventRepo, contractRepo, authz, console, log),
	}, nil
}

func openDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Source), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.Source), &gorm.Config{})
	}
}

// mustApp and mustActor terminate the process on failure; every command
// goes through them before touching a service.
func mustApp() *App {
	app, err := initApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	return app
}

func mustActor(app *App) *user.User {
	actor, err := app.Auth.Verify()
	if err != nil {
		// Verify already emitted its message.
		os.Exit(1)
	}
	return actor
}

// fail ends the command after a service error. Denials and conflicts
// already emitted their message through the view; invariant violations
// and internal errors are displayed here, at the boundary.
func fail(err error) {
	if internal.IsInvariantViolation(err) {
		fmt.Fprintf(os.Stderr, "❌ %s\n", err.Error())
	} else if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeInternal {
		fmt.Fprintf(os.Stderr, "❌ Erreur interne : %v\n", err)
	} else if _, ok := internal.IsAppError(err); !ok {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(contractCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
