package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/services"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/httpserver"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd creates the serve command: the HTTP API plus the scheduled
// newsletter and trash-reminder jobs
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the site API server and scheduled email jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := httpserver.NewHandler(
				app.Content,
				app.Newsletter,
				app.Trash,
				app.Runs,
				app.GmailClient,
				app.Cfg,
				app.Logger,
				app.Location,
			)
			router := httpserver.NewRouter(handler, app.Database, app.Logger)

			scheduler, err := startScheduler(app)
			if err != nil {
				return err
			}
			defer scheduler.Stop()

			server := &http.Server{
				Addr:    app.Cfg.Server.Addr,
				Handler: router,
			}

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP server listening", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case sig := <-stop:
				app.Logger.Info("Shutting down", zap.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}

			app.Logger.Info("Server stopped")
			return nil
		},
	}
}

// startScheduler wires the cron jobs that back the scheduled dispatches.
// Schedules are interpreted in the site's timezone so "Sunday evening"
// means Sunday evening locally.
func startScheduler(app *AppContext) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithLocation(app.Location))

	_, err := scheduler.AddFunc(app.Cfg.Jobs.TrashReminderCron, func() {
		result, err := services.SendTrashReminders(app.Ctx, app.Trash, app.GmailClient, app.Cfg, app.Logger)
		if err != nil {
			app.Logger.Error("Scheduled trash reminder dispatch failed", zap.Error(err))
			return
		}
		app.Logger.Info("Scheduled trash reminder dispatch completed",
			zap.Int("sent", len(result.Sent)),
			zap.Int("failed", len(result.Failed)))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule trash reminders: %w", err)
	}

	_, err = scheduler.AddFunc(app.Cfg.Jobs.NewsletterCheckCron, func() {
		result, err := services.SendNewsletter(app.Ctx, app.Newsletter, app.Runs, app.Content, app.GmailClient, app.Cfg, app.Logger, false)
		if err != nil {
			app.Logger.Error("Scheduled newsletter dispatch failed", zap.Error(err))
			return
		}
		if result.Skipped {
			app.Logger.Info("Scheduled newsletter check skipped", zap.String("reason", result.SkipReason))
			return
		}
		app.Logger.Info("Scheduled newsletter dispatch completed",
			zap.Int("sent", len(result.Sent)),
			zap.Int("failed", len(result.Failed)))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule newsletter check: %w", err)
	}

	scheduler.Start()
	app.Logger.Info("Scheduler started",
		zap.String("trash_reminders", app.Cfg.Jobs.TrashReminderCron),
		zap.String("newsletter_check", app.Cfg.Jobs.NewsletterCheckCron))

	return scheduler, nil
}
