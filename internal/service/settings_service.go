package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// WebhookStore persists the webhook target
type WebhookStore interface {
	WebhookURL(ctx context.Context) (string, error)
	SaveWebhookURL(ctx context.Context, url string) error
}

// WebhookTarget receives the active webhook url
type WebhookTarget interface {
	SetURL(url string)
	URL() string
}

// Resyncer pushes the current order book to the webhook
type Resyncer interface {
	Resync(ctx context.Context) error
}

// SettingsService manages the spreadsheet webhook configuration
type SettingsService struct {
	store  WebhookStore
	target WebhookTarget
	resync Resyncer
	log    *slog.Logger
}

func NewSettingsService(store WebhookStore, target WebhookTarget, resync Resyncer, log *slog.Logger) *SettingsService {
	return &SettingsService{store: store, target: target, resync: resync, log: log}
}

// WebhookURL returns the url currently used for syncing
func (s *SettingsService) WebhookURL(ctx context.Context) string {
	return s.target.URL()
}

// SetWebhookURL validates, persists and activates a new webhook url, then
// pushes the current orders to it. An empty url disables syncing.
func (s *SettingsService) SetWebhookURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if err := validateWebhookURL(raw); err != nil {
			return err
		}
	}

	if err := s.store.SaveWebhookURL(ctx, raw); err != nil {
		return fmt.Errorf("failed to save webhook url: %w", err)
	}
	s.target.SetURL(raw)
	s.log.Info("webhook url updated", "configured", raw != "")

	if raw == "" || s.resync == nil {
		return nil
	}
	if err := s.resync.Resync(ctx); err != nil {
		s.log.Error("failed to queue sheet sync", "error", err)
	}
	return nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidWebhookURL
	}
	return nil
}
