package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	SubscribedAt time.Time `json:"subscribed_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewSubscriber(email, source string, now time.Time) *Subscriber {
	return &Subscriber{
		ID:           uuid.New().String(),
		Email:        email,
		Status:       "active",
		Source:       source,
		SubscribedAt: now,
		UpdatedAt:    now,
	}
}

type SubscriberRepositoryInterface interface {
	Create(ctx context.Context, s *Subscriber) error
	CountActive(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
