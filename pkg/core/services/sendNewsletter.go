package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/metrics"
)

const newsletterPostCount = 5

// NewsletterContent defines the content-store reads the newsletter needs
type NewsletterContent interface {
	LatestPostTime(ctx context.Context) (time.Time, error)
	Posts(ctx context.Context, limit int) ([]model.Post, error)
}

// NewsletterResult represents the outcome of a newsletter dispatch
type NewsletterResult struct {
	Skipped    bool
	SkipReason string
	Sent       []string
	Failed     []FailedEmail
}

// SendNewsletter broadcasts the latest news posts to every active verified
// newsletter subscriber. Unless forced, the broadcast is gated on the run
// log: it only goes out when a post is newer than the last recorded send.
func SendNewsletter(
	ctx context.Context,
	store db.SubscriberStore,
	runs db.RunLogStore,
	content NewsletterContent,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	force bool,
) (*NewsletterResult, error) {
	logger.Debug("Starting newsletter dispatch", zap.Bool("force", force))

	// Step 1: gate on the run log unless forced
	latest, err := content.LatestPostTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest post time: %w", err)
	}

	if !force {
		if latest.IsZero() {
			logger.Info("No posts published, skipping newsletter")
			return &NewsletterResult{Skipped: true, SkipReason: "no posts published"}, nil
		}

		lastRun, err := runs.LastRun(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch last newsletter run: %w", err)
		}

		if lastRun != nil && !latest.After(lastRun.SentAt) {
			logger.Info("No posts newer than last run, skipping newsletter",
				zap.Time("latest_post", latest),
				zap.Time("last_run", lastRun.SentAt))
			return &NewsletterResult{Skipped: true, SkipReason: "no new posts since last run"}, nil
		}
	}

	// Step 2: fetch the posts that make up the issue
	posts, err := content.Posts(ctx, newsletterPostCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	logger.Debug("Fetched posts for newsletter", zap.Int("count", len(posts)))

	if len(posts) == 0 {
		logger.Info("No posts to send, skipping newsletter")
		return &NewsletterResult{Skipped: true, SkipReason: "no posts published"}, nil
	}

	// Step 3: fetch recipients
	recipients, err := store.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch newsletter recipients: %w", err)
	}
	logger.Debug("Found newsletter recipients", zap.Int("count", len(recipients)))

	if len(recipients) == 0 {
		logger.Info("No newsletter recipients")
		return &NewsletterResult{Skipped: true, SkipReason: "no recipients"}, nil
	}

	subject := fmt.Sprintf("%s news", cfg.Site.Name)
	textBody, htmlBody := renderNewsletter(posts, cfg)

	// Step 4: fan out, one independent send per recipient
	sent := []string{}
	failed := []FailedEmail{}

	for _, sub := range recipients {
		logger.Info("Sending newsletter", zap.String("email", sub.Email))

		if err := sender.SendEmail(sub.Email, subject, textBody, htmlBody); err != nil {
			logger.Warn("Failed to send newsletter",
				zap.String("email", sub.Email),
				zap.Error(err))

			metrics.IncrementEmailsSent("newsletter", "failed")
			failed = append(failed, FailedEmail{Email: sub.Email, Error: err.Error()})
			continue
		}

		metrics.IncrementEmailsSent("newsletter", "success")
		sent = append(sent, sub.Email)
	}

	// If all sends failed, return error
	if len(failed) == len(recipients) {
		return nil, fmt.Errorf("all %d newsletter send attempts failed", len(failed))
	}

	// Step 5: record the run so the gate holds until the next new post
	if err := runs.RecordRun(ctx, time.Now(), len(sent), force); err != nil {
		return nil, fmt.Errorf("failed to record newsletter run: %w", err)
	}

	logger.Debug("Newsletter dispatch completed",
		zap.Int("sent", len(sent)),
		zap.Int("failed", len(failed)))

	return &NewsletterResult{Sent: sent, Failed: failed}, nil
}

// renderNewsletter builds the plain-text and HTML bodies from the posts
func renderNewsletter(posts []model.Post, cfg *config.Config) (string, string) {
	var text strings.Builder
	var html strings.Builder

	text.WriteString(fmt.Sprintf("The latest from %s\n\n", cfg.Site.Name))
	html.WriteString(fmt.Sprintf("<h1>The latest from %s</h1>", cfg.Site.Name))

	for _, post := range posts {
		url := fmt.Sprintf("%s/news/%s", cfg.Site.BaseURL, post.Slug)

		text.WriteString(fmt.Sprintf("%s (%s)\n", post.Title, post.PublishedAt.Format("January 2, 2006")))
		if post.Summary != "" {
			text.WriteString(post.Summary + "\n")
		}
		text.WriteString(url + "\n\n")

		html.WriteString(fmt.Sprintf("<h2><a href=%q>%s</a></h2>", url, post.Title))
		html.WriteString(fmt.Sprintf("<p><em>%s</em></p>", post.PublishedAt.Format("January 2, 2006")))
		if post.Summary != "" {
			html.WriteString(fmt.Sprintf("<p>%s</p>", post.Summary))
		}
	}

	text.WriteString(fmt.Sprintf("To unsubscribe, visit %s/api/newsletter/unsubscribe\n", cfg.Site.BaseURL))
	html.WriteString(fmt.Sprintf("<p><a href=\"%s/api/newsletter/unsubscribe\">Unsubscribe</a></p>", cfg.Site.BaseURL))

	return text.String(), html.String()
}
