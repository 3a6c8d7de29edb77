package inquiry

import (
	"context"

	"storefront-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) CreateInquiry(ctx context.Context, in CreateInquiryInput) (*domain.Inquiry, error) {
	const q = `
INSERT INTO inquiries (name, email, phone, message)
VALUES ($1, $2, $3, $4)
RETURNING id::text, name, email, phone, message, created_at
`
	var inq domain.Inquiry
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Email, in.Phone, in.Message).Scan(
		&inq.ID,
		&inq.Name,
		&inq.Email,
		&inq.Phone,
		&inq.Message,
		&inq.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &inq, nil
}

func (r *postgresRepo) UpsertSubscriber(ctx context.Context, email string) (*domain.Subscriber, error) {
	const q = `
INSERT INTO subscribers (email)
VALUES ($1)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id::text, email, subscribed_at
`
	var sub domain.Subscriber
	if err := r.pool.QueryRow(ctx, q, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.SubscribedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *postgresRepo) RecentInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	const q = `
SELECT id::text, name, email, phone, message, created_at
FROM inquiries
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Inquiry
	for rows.Next() {
		var inq domain.Inquiry
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Message, &inq.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, rows.Err()
}
