package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/metrics"
)

// TrashReminderResult represents the outcome of a trash-reminder broadcast
type TrashReminderResult struct {
	Sent   []string
	Failed []FailedEmail
}

// SendTrashReminders emails every active trash-reminder subscriber ahead of
// the next pickup. Per-recipient failures are collected without aborting the
// rest of the broadcast.
func SendTrashReminders(
	ctx context.Context,
	store db.SubscriberStore,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
) (*TrashReminderResult, error) {
	logger.Debug("Starting trash reminder dispatch")

	recipients, err := store.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trash reminder recipients: %w", err)
	}
	logger.Debug("Found trash reminder recipients", zap.Int("count", len(recipients)))

	if len(recipients) == 0 {
		logger.Info("No trash reminder recipients")
		return &TrashReminderResult{Sent: []string{}, Failed: []FailedEmail{}}, nil
	}

	subject := fmt.Sprintf("%s: trash pickup tomorrow", cfg.Site.Name)

	sent := []string{}
	failed := []FailedEmail{}

	for _, sub := range recipients {
		textBody := fmt.Sprintf("Hi%s\n\nFriendly reminder to put your trash and recycling out tonight for tomorrow's pickup.\n\nTo stop these reminders, visit %s/api/trash/unsubscribe?email=%s\n",
			greetingName(sub.Name), cfg.Site.BaseURL, sub.Email)
		htmlBody := fmt.Sprintf("<p>Hi%s</p><p>Friendly reminder to put your trash and recycling out tonight for tomorrow's pickup.</p><p><a href=\"%s/api/trash/unsubscribe?email=%s\">Stop these reminders</a></p>",
			greetingName(sub.Name), cfg.Site.BaseURL, sub.Email)

		logger.Info("Sending trash reminder", zap.String("email", sub.Email))

		if err := sender.SendEmail(sub.Email, subject, textBody, htmlBody); err != nil {
			logger.Warn("Failed to send trash reminder",
				zap.String("email", sub.Email),
				zap.Error(err))

			metrics.IncrementEmailsSent("trash", "failed")
			failed = append(failed, FailedEmail{Email: sub.Email, Error: err.Error()})
			continue
		}

		metrics.IncrementEmailsSent("trash", "success")
		sent = append(sent, sub.Email)
	}

	// If all emails failed, return error
	if len(failed) == len(recipients) {
		return nil, fmt.Errorf("all %d trash reminder send attempts failed", len(failed))
	}

	logger.Debug("Trash reminder dispatch completed",
		zap.Int("sent", len(sent)),
		zap.Int("failed", len(failed)))

	return &TrashReminderResult{Sent: sent, Failed: failed}, nil
}
