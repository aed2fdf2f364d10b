package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quoteflow/internal/domain/entities"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrPushNotConfigured = errors.New("push not configured")

// PushConfig selects the Firebase project push alerts are sent through.
// CredentialsFile is a service-account JSON; when empty the application
// default credentials are used.
type PushConfig struct {
	ProjectID       string
	CredentialsFile string
}

func (c PushConfig) IsConfigured() bool {
	return c.ProjectID != "" || c.CredentialsFile != ""
}

// messageSender is the slice of messaging.Client the push sender uses.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushSender delivers quote-viewed alerts to the detailer's registered device
// through Firebase Cloud Messaging.
type PushSender struct {
	client messageSender
}

var _ Sender = (*PushSender)(nil)

func NewPushSender(ctx context.Context, cfg PushConfig) (*PushSender, error) {
	if !cfg.IsConfigured() {
		return nil, ErrPushNotConfigured
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	log.Info().Str("project_id", cfg.ProjectID).Msg("[notification][push] FCM client initialized")
	return &PushSender{client: client}, nil
}

func (s *PushSender) SendQuoteViewed(ctx context.Context, quote entities.Quote, detailer entities.Detailer, viewedAt time.Time) error {
	id, err := s.client.Send(ctx, quoteViewedMessage(quote, detailer, viewedAt))
	if err != nil {
		if messaging.IsUnregistered(err) {
			log.Warn().Str("detailer_id", detailer.ID).Msg("[notification][push] device token no longer registered")
		}
		return fmt.Errorf("push send: %w", err)
	}
	log.Debug().Str("message_id", id).Str("quote_id", quote.ID).Msg("[notification][push] sent")
	return nil
}

func quoteViewedMessage(quote entities.Quote, detailer entities.Detailer, viewedAt time.Time) *messaging.Message {
	return &messaging.Message{
		Token: detailer.FCMToken,
		Notification: &messaging.Notification{
			Title: quoteViewedTitle,
			Body:  quoteViewedBody(quote),
		},
		Data: map[string]string{
			"type":      "quote_viewed",
			"quote_id":  quote.ID,
			"viewed_at": viewedAt.UTC().Format(time.RFC3339),
		},
	}
}
