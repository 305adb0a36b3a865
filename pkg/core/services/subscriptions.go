package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

// ErrInvalidToken is returned by Verify when no subscriber holds the token.
// Tokens are single-use, so a consumed token fails the same way as a bogus one.
var ErrInvalidToken = errors.New("invalid or expired verification token")

// SignupResult represents the outcome of a signup
type SignupResult struct {
	Subscriber      *db.Subscriber
	NeedsVerify     bool // a verification email was issued
	AlreadyVerified bool // existing subscriber, no new token issued
}

// VerifyResult represents the outcome of a successful verification
type VerifyResult struct {
	Email string
}

// UnsubscribeResult represents the outcome of an unsubscribe
type UnsubscribeResult struct {
	Email   string
	Already bool // was already inactive or unknown
}

// ResubscribeResult represents the outcome of a resubscribe
type ResubscribeResult struct {
	Email   string
	Already bool // was already active
}

// NormalizeEmail trims and lower-cases an address. Every subscription
// transition keys on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupNewsletter creates or refreshes a newsletter subscriber.
// New and unverified subscribers get a fresh verification token and a
// verification email; a subscriber who already verified stays verified and
// gets no new token. Signup always re-asserts active=true.
func SignupNewsletter(
	ctx context.Context,
	store db.SubscriberStore,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	email, name string,
) (*SignupResult, error) {
	email = NormalizeEmail(email)
	logger.Debug("Newsletter signup", zap.String("email", email))

	existing, err := store.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub := &db.Subscriber{
		Email:  email,
		Name:   name,
		Active: true,
	}

	if existing != nil && existing.Verified {
		// Never downgrade a verified subscriber. Refresh fields only.
		sub.Verified = true
		if name == "" {
			sub.Name = existing.Name
		}

		if err := store.Upsert(ctx, sub); err != nil {
			return nil, fmt.Errorf("failed to update subscriber: %w", err)
		}

		logger.Info("Existing verified subscriber refreshed", zap.String("email", email))
		return &SignupResult{Subscriber: sub, AlreadyVerified: true}, nil
	}

	// New or not-yet-verified subscriber: issue a fresh token
	sub.Verified = false
	sub.VerificationToken = uuid.New().String()

	if err := store.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	logger.Info("Newsletter subscriber pending verification", zap.String("email", email))

	// Confirmation email is not part of the transaction. A failed send is
	// logged and the signup still stands.
	subject := fmt.Sprintf("Confirm your %s newsletter subscription", cfg.Site.Name)
	verifyURL := fmt.Sprintf("%s/api/newsletter/verify?token=%s", cfg.Site.BaseURL, sub.VerificationToken)
	textBody := fmt.Sprintf("Hi%s\n\nThanks for signing up for the %s newsletter.\nPlease confirm your subscription by visiting:\n%s\n\nIf you didn't request this, you can ignore this email.\n",
		greetingName(name), cfg.Site.Name, verifyURL)
	htmlBody := fmt.Sprintf("<p>Hi%s</p><p>Thanks for signing up for the %s newsletter.</p><p><a href=%q>Confirm your subscription</a></p><p>If you didn't request this, you can ignore this email.</p>",
		greetingName(name), cfg.Site.Name, verifyURL)

	if err := sender.SendEmail(email, subject, textBody, htmlBody); err != nil {
		logger.Warn("Failed to send verification email",
			zap.String("email", email),
			zap.Error(err))
	}

	return &SignupResult{Subscriber: sub, NeedsVerify: true}, nil
}

// SignupTrash creates or refreshes a trash-reminder subscriber. The trash
// list has no verification step, so signup goes straight to active.
func SignupTrash(
	ctx context.Context,
	store db.SubscriberStore,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	email, name string,
) (*SignupResult, error) {
	email = NormalizeEmail(email)
	logger.Debug("Trash reminder signup", zap.String("email", email))

	sub := &db.Subscriber{
		Email:    email,
		Name:     name,
		Active:   true,
		Verified: true,
	}

	if err := store.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	logger.Info("Trash reminder subscriber active", zap.String("email", email))

	subject := fmt.Sprintf("%s trash reminders", cfg.Site.Name)
	textBody := fmt.Sprintf("Hi%s\n\nYou're signed up for %s trash and recycling reminders.\nTo stop receiving them, visit %s/api/trash/unsubscribe?email=%s\n",
		greetingName(name), cfg.Site.Name, cfg.Site.BaseURL, email)
	htmlBody := fmt.Sprintf("<p>Hi%s</p><p>You're signed up for %s trash and recycling reminders.</p><p><a href=\"%s/api/trash/unsubscribe?email=%s\">Unsubscribe</a></p>",
		greetingName(name), cfg.Site.Name, cfg.Site.BaseURL, email)

	if err := sender.SendEmail(email, subject, textBody, htmlBody); err != nil {
		logger.Warn("Failed to send signup confirmation email",
			zap.String("email", email),
			zap.Error(err))
	}

	return &SignupResult{Subscriber: sub}, nil
}

// Verify consumes a verification token: the subscriber becomes verified and
// active and the token is cleared so it cannot be replayed.
func Verify(
	ctx context.Context,
	store db.SubscriberStore,
	sender EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	token string,
) (*VerifyResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	logger.Debug("Verifying subscription token")

	sub, err := store.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if sub == nil {
		logger.Info("Verification attempted with unknown token")
		return nil, ErrInvalidToken
	}

	if err := store.SetVerified(ctx, sub.Email); err != nil {
		return nil, fmt.Errorf("failed to mark subscriber verified: %w", err)
	}

	logger.Info("Subscriber verified", zap.String("email", sub.Email))

	subject := fmt.Sprintf("You're subscribed to the %s newsletter", cfg.Site.Name)
	textBody := fmt.Sprintf("Hi%s\n\nYour subscription to the %s newsletter is confirmed.\n\nThanks\n%s\n",
		greetingName(sub.Name), cfg.Site.Name, cfg.Site.Name)
	htmlBody := fmt.Sprintf("<p>Hi%s</p><p>Your subscription to the %s newsletter is confirmed.</p>",
		greetingName(sub.Name), cfg.Site.Name)

	if err := sender.SendEmail(sub.Email, subject, textBody, htmlBody); err != nil {
		logger.Warn("Failed to send verification confirmation email",
			zap.String("email", sub.Email),
			zap.Error(err))
	}

	return &VerifyResult{Email: sub.Email}, nil
}

// Unsubscribe flips a subscriber inactive. Repeating it, or unsubscribing an
// address that was never subscribed, reports "already unsubscribed" without
// an error.
func Unsubscribe(
	ctx context.Context,
	store db.SubscriberStore,
	logger *zap.Logger,
	email string,
) (*UnsubscribeResult, error) {
	email = NormalizeEmail(email)
	logger.Debug("Unsubscribe requested", zap.String("email", email))

	sub, err := store.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	if sub == nil || !sub.Active {
		logger.Info("Already unsubscribed", zap.String("email", email))
		return &UnsubscribeResult{Email: email, Already: true}, nil
	}

	if err := store.SetActive(ctx, email, false); err != nil {
		return nil, fmt.Errorf("failed to deactivate subscriber: %w", err)
	}

	logger.Info("Subscriber unsubscribed", zap.String("email", email))
	return &UnsubscribeResult{Email: email}, nil
}

// Resubscribe flips a subscriber back to active, inserting a fresh row when
// the address is unknown. Resubscribing an already-active address reports
// "already subscribed" without an error.
func Resubscribe(
	ctx context.Context,
	store db.SubscriberStore,
	logger *zap.Logger,
	email string,
) (*ResubscribeResult, error) {
	email = NormalizeEmail(email)
	logger.Debug("Resubscribe requested", zap.String("email", email))

	sub, err := store.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	if sub != nil && sub.Active {
		logger.Info("Already subscribed", zap.String("email", email))
		return &ResubscribeResult{Email: email, Already: true}, nil
	}

	if sub == nil {
		if err := store.Upsert(ctx, &db.Subscriber{Email: email, Active: true}); err != nil {
			return nil, fmt.Errorf("failed to insert subscriber: %w", err)
		}
	} else {
		if err := store.SetActive(ctx, email, true); err != nil {
			return nil, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
	}

	logger.Info("Subscriber resubscribed", zap.String("email", email))
	return &ResubscribeResult{Email: email}, nil
}

// greetingName formats the optional display name for an email salutation
func greetingName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return " " + name
}
