package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/cmd/cli/commands"
	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/clients/cmsclient"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/clients/gmailclient"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/postgres"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/utils"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Cypressdale HOA site backend - content API, subscriptions, and email dispatch",
		Long:  `Backend for the Cypressdale HOA community site: the public content API, pool schedule, RSVP and subscription endpoints, and the newsletter and trash-reminder email jobs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.SendNewsletterCmd(app))
	rootCmd.AddCommand(commands.SendTrashRemindersCmd(app))
	rootCmd.AddCommand(commands.ListSubscribersCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and the database
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	loc := time.Local
	if cfg.Site.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Site.Timezone)
		if err != nil {
			return fmt.Errorf("failed to load site timezone: %w", err)
		}
	}

	logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	logger.Debug("OAuth configuration loaded successfully")

	logger.Info("Initializing gmail client")
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to build oauth config: %w", err)
	}
	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return fmt.Errorf("failed to obtain oauth token: %w", err)
	}
	gmailClient, err := gmailclient.NewClient(ctx, oauthCfg, cfg.Mail, token)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}
	logger.Debug("Gmail client initialized successfully")

	logger.Info("Initializing content store client", zap.String("dataset", cfg.Content.Dataset))
	var content cmsclient.ContentStore = cmsclient.NewClient(
		cfg.Content.BaseURL, cfg.Content.Dataset, cfg.Content.Token, logger)

	if cfg.Redis.Addr != "" {
		logger.Info("Enabling content cache", zap.String("redis_addr", cfg.Redis.Addr))
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := time.Duration(cfg.Content.CacheTTLMinutes) * time.Minute
		content = cmsclient.NewCachedStore(content, rdb, ttl, logger)
	}

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database initialized successfully")

	*app = commands.AppContext{
		Cfg:         cfg,
		OAuthCfg:    oauthCfg,
		Content:     content,
		GmailClient: gmailClient,
		Database:    database,
		Newsletter:  database.NewsletterSubscribers(),
		Trash:       database.TrashSubscribers(),
		Runs:        database.NewsletterRuns(),
		Location:    loc,
		Logger:      logger,
		Ctx:         ctx,
	}

	return nil
}
