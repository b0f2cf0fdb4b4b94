package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/xavierca1/seerah-hajj/internal/entity"
)

type SubscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{DB: db}
}

func (r *SubscriberRepository) Create(ctx context.Context, s *entity.Subscriber) error {
	query := `
		INSERT INTO email_subscribers (id, email, status, source, subscribed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Email, s.Status, s.Source, s.SubscribedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		return translate(err, "insert", "email_subscribers")
	}
	return nil
}

func (r *SubscriberRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_subscribers WHERE status = 'active'`).Scan(&n)
	if err != nil {
		return 0, translate(err, "count", "email_subscribers")
	}
	return n, nil
}

func (r *SubscriberRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM email_subscribers WHERE subscribed_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, translate(err, "count", "email_subscribers")
	}
	return n, nil
}
