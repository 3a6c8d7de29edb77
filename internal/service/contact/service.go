package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront-backend/internal/contact"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/ratelimit"
	"storefront-backend/internal/repository/inquiry"
	"storefront-backend/internal/shopify"
)

var (
	ErrRateLimited = errors.New("too many requests, please try again later")
	ErrSubmit      = errors.New("something went wrong, please try again")
)

// ValidationError carries per-field messages back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "invalid submission" }

type customerClient interface {
	UpsertCustomer(ctx context.Context, in shopify.CustomerUpsert) (int64, error)
}

// Service handles contact-form and newsletter submissions: validate, rate
// limit by client IP, push the customer upstream, then append to the local
// inquiry log. The local write is best effort.
type Service struct {
	customers        customerClient
	inquiries        inquiry.Repository
	contactLimiter   *ratelimit.Limiter
	subscribeLimiter *ratelimit.Limiter
	now              func() time.Time
	logger           *log.Logger
}

// New builds the contact service. A nil logger discards; a nil repository
// disables the local log.
func New(customers customerClient, inquiries inquiry.Repository, contactLimiter, subscribeLimiter *ratelimit.Limiter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		customers:        customers,
		inquiries:        inquiries,
		contactLimiter:   contactLimiter,
		subscribeLimiter: subscribeLimiter,
		now:              time.Now,
		logger:           logger,
	}
}

// ProcessContact runs the full contact-form flow. Bot submissions return nil
// without side effects, so the form shows success.
func (s *Service) ProcessContact(ctx context.Context, clientIP string, in contact.Input) error {
	if in.IsBot() {
		s.logger.Printf("contact: honeypot tripped, ip=%s", clientIP)
		return nil
	}
	if fields := in.Validate(); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if !s.contactLimiter.Allow(ctx, "contact:"+clientIP) {
		return ErrRateLimited
	}

	phone := ""
	if strings.TrimSpace(in.Phone) != "" {
		phone, _ = contact.FormatPhone(in.Phone)
	}
	first, last := splitName(in.Name)

	note := fmt.Sprintf("Contact form (%s):\n%s", s.now().UTC().Format("2006-01-02 15:04 MST"), in.Message)
	_, err := s.customers.UpsertCustomer(ctx, shopify.CustomerUpsert{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(in.Email),
		Phone:     phone,
		Note:      note,
		Tags:      []string{"contact-form"},
	})
	if err != nil {
		s.logger.Printf("contact: upsert customer: %v", err)
		if msg, ok := fieldMessage(err); ok {
			return &ValidationError{Fields: msg}
		}
		return ErrSubmit
	}

	s.logInquiry(ctx, inquiry.CreateInquiryInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   phone,
		Message: strings.TrimSpace(in.Message),
	})
	return nil
}

// ProcessSubscribe captures a newsletter email. Already-subscribed emails
// report success.
func (s *Service) ProcessSubscribe(ctx context.Context, clientIP string, in contact.SubscribeInput) error {
	if in.IsBot() {
		s.logger.Printf("subscribe: honeypot tripped, ip=%s", clientIP)
		return nil
	}
	if fields := in.Validate(); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if !s.subscribeLimiter.Allow(ctx, "subscribe:"+clientIP) {
		return ErrRateLimited
	}

	email := strings.TrimSpace(in.Email)
	_, err := s.customers.UpsertCustomer(ctx, shopify.CustomerUpsert{
		Email:            email,
		Tags:             []string{"newsletter"},
		MarketingConsent: true,
	})
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		s.logger.Printf("subscribe: upsert customer: %v", err)
		return ErrSubmit
	}

	if s.inquiries != nil {
		if _, err := s.inquiries.UpsertSubscriber(ctx, email); err != nil {
			s.logger.Printf("subscribe: local log: %v", err)
		}
	}
	return nil
}

func (s *Service) logInquiry(ctx context.Context, in inquiry.CreateInquiryInput) {
	if s.inquiries == nil {
		return
	}
	if _, err := s.inquiries.CreateInquiry(ctx, in); err != nil {
		s.logger.Printf("contact: local log: %v", err)
	}
}

// fieldMessage maps upstream field-level rejections onto the form field they
// belong to.
func fieldMessage(err error) (map[string]string, bool) {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "phone number"):
		return map[string]string{"phone": msg}, true
	case strings.HasPrefix(msg, "email address"):
		return map[string]string{"email": msg}, true
	}
	return nil, false
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
