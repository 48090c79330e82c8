package billing

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new postgres subscription repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateSubscription(ctx context.Context, s *Subscription) error {
	query := `INSERT INTO subscriptions (id, owner_id, gateway_subscription_id, plan_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.ID, s.OwnerID, s.GatewaySubscriptionID,
		s.PlanID, s.Status).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (r *postgresRepository) LatestByOwner(ctx context.Context, owner uuid.UUID) (*Subscription, error) {
	query := `SELECT id, owner_id, gateway_subscription_id, plan_id, status, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	s := &Subscription{}
	err := r.db.QueryRowContext(ctx, query, owner).Scan(&s.ID, &s.OwnerID,
		&s.GatewaySubscriptionID, &s.PlanID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return s, nil
}

func (r *postgresRepository) SetStatusByGatewayID(ctx context.Context, gatewayID, status string) (*Subscription, error) {
	query := `UPDATE subscriptions
		SET status = $2, updated_at = now()
		WHERE gateway_subscription_id = $1
		RETURNING id, owner_id, gateway_subscription_id, plan_id, status, created_at, updated_at`

	s := &Subscription{}
	err := r.db.QueryRowContext(ctx, query, gatewayID, status).Scan(&s.ID, &s.OwnerID,
		&s.GatewaySubscriptionID, &s.PlanID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("subscription not found")
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return s, nil
}
