package inquiry

import (
	"context"

	"storefront-backend/internal/domain"
)

type CreateInquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Repository is the durable log of inbound contact traffic. Inserts happen
// after the upstream customer upsert, so a write failure here must not fail
// the request.
type Repository interface {
	CreateInquiry(ctx context.Context, in CreateInquiryInput) (*domain.Inquiry, error)
	UpsertSubscriber(ctx context.Context, email string) (*domain.Subscriber, error)
	RecentInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error)
}
