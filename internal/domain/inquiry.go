package domain

import "time"

// Inquiry is the durable local record of a contact-form submission. The
// upstream customer record is the source of truth; this log survives upstream
// outages and is never exposed to shoppers.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Subscriber is a captured marketing email. Upserted by email so repeat
// signups stay idempotent.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
