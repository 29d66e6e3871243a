package endpoint

//go:generate mockgen -source=delivery.go -destination=mock/mock_delivery.go -package=mock

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/psyborgxoxo/SouravPortfolio/internal/contact"
)

// Submission is one accepted contact message with its request metadata.
type Submission struct {
	ID         string
	Fields     contact.Fields
	ReceivedAt time.Time
	UserAgent  string
	ClientIP   string
}

// Delivery forwards an accepted submission to wherever the site owner reads mail.
type Delivery interface {
	Deliver(ctx context.Context, s Submission) error
}

// LogDelivery accepts every submission and only records that it did so.
type LogDelivery struct {
	logger zerolog.Logger
}

func NewLogDelivery(logger zerolog.Logger) *LogDelivery {
	return &LogDelivery{logger: logger.With().Str("component", "contact_delivery").Logger()}
}

func (l *LogDelivery) Deliver(ctx context.Context, s Submission) error {
	l.logger.Info().Str("submission_id", s.ID).Msg("contact submission delivered to inbox")
	return nil
}
