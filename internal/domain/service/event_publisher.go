package service

import (
	"context"
	"time"
)

// RatingSubmittedEvent is emitted after a rating upsert commits.
type RatingSubmittedEvent struct {
	RequestID   string    `json:"request_id,omitempty"`
	UserID      string    `json:"user_id"`
	StoreID     string    `json:"store_id"`
	Score       int       `json:"score"`
	Average     float64   `json:"average"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// EventPublisher publishes domain events to a message transport.
type EventPublisher interface {
	PublishRatingSubmitted(ctx context.Context, event *RatingSubmittedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
