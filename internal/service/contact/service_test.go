package contact

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-backend/internal/contact"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/ratelimit"
	"storefront-backend/internal/repository/inquiry"
	"storefront-backend/internal/shopify"
)

type stubCustomers struct {
	lastUpsert shopify.CustomerUpsert
	upsertErr  error
	calls      int
}

func (s *stubCustomers) UpsertCustomer(_ context.Context, in shopify.CustomerUpsert) (int64, error) {
	s.calls++
	s.lastUpsert = in
	return 7, s.upsertErr
}

type stubInquiries struct {
	created    []inquiry.CreateInquiryInput
	subscribed []string
	createErr  error
}

func (s *stubInquiries) CreateInquiry(_ context.Context, in inquiry.CreateInquiryInput) (*domain.Inquiry, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, in)
	return &domain.Inquiry{ID: "i1"}, nil
}

func (s *stubInquiries) UpsertSubscriber(_ context.Context, email string) (*domain.Subscriber, error) {
	s.subscribed = append(s.subscribed, email)
	return &domain.Subscriber{ID: "s1", Email: email}, nil
}

func (s *stubInquiries) RecentInquiries(context.Context, int) ([]domain.Inquiry, error) {
	return nil, nil
}

func testLimiter(limit int) *ratelimit.Limiter {
	return ratelimit.New(ratelimit.NewMemoryStore(), 5*time.Minute, limit)
}

func validInput() contact.Input {
	return contact.Input{
		Name:    "Jamie Doe",
		Email:   "jamie@example.com",
		Phone:   "(555) 123-4567",
		Message: "Do you ship to Oregon? Asking for a friend.",
	}
}

func newService(customers *stubCustomers, inquiries *stubInquiries) *Service {
	return New(customers, inquiries, testLimiter(5), testLimiter(10), nil)
}

func TestProcessContactUpsertsAndLogs(t *testing.T) {
	customers := &stubCustomers{}
	inquiries := &stubInquiries{}
	svc := newService(customers, inquiries)

	if err := svc.ProcessContact(context.Background(), "1.2.3.4", validInput()); err != nil {
		t.Fatalf("ProcessContact: %v", err)
	}
	if customers.lastUpsert.FirstName != "Jamie" || customers.lastUpsert.LastName != "Doe" {
		t.Fatalf("name split wrong: %+v", customers.lastUpsert)
	}
	if customers.lastUpsert.Phone != "+15551234567" {
		t.Fatalf("phone not normalized: %q", customers.lastUpsert.Phone)
	}
	if len(customers.lastUpsert.Tags) != 1 || customers.lastUpsert.Tags[0] != "contact-form" {
		t.Fatalf("tags = %v", customers.lastUpsert.Tags)
	}
	if len(inquiries.created) != 1 || inquiries.created[0].Email != "jamie@example.com" {
		t.Fatalf("inquiry not logged: %+v", inquiries.created)
	}
}

func TestProcessContactUnparseablePhoneIsOmitted(t *testing.T) {
	customers := &stubCustomers{}
	svc := newService(customers, &stubInquiries{})

	in := validInput()
	in.Phone = "12345"
	if err := svc.ProcessContact(context.Background(), "1.2.3.4", in); err != nil {
		t.Fatalf("ProcessContact: %v", err)
	}
	if customers.lastUpsert.Phone != "" {
		t.Fatalf("expected phone omitted, got %q", customers.lastUpsert.Phone)
	}
}

func TestProcessContactHoneypotSilentlySucceeds(t *testing.T) {
	customers := &stubCustomers{}
	svc := newService(customers, &stubInquiries{})

	in := validInput()
	in.Website = "http://spam.example"
	if err := svc.ProcessContact(context.Background(), "1.2.3.4", in); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if customers.calls != 0 {
		t.Fatalf("expected no upstream call, got %d", customers.calls)
	}
}

func TestProcessContactValidation(t *testing.T) {
	svc := newService(&stubCustomers{}, &stubInquiries{})

	in := validInput()
	in.Name = "J"
	err := svc.ProcessContact(context.Background(), "1.2.3.4", in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Fatalf("expected name field error, got %v", verr.Fields)
	}
}

func TestProcessContactRateLimitPerIP(t *testing.T) {
	svc := newService(&stubCustomers{}, &stubInquiries{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := svc.ProcessContact(ctx, "1.2.3.4", validInput()); err != nil {
			t.Fatalf("submission %d: %v", i+1, err)
		}
	}
	if err := svc.ProcessContact(ctx, "1.2.3.4", validInput()); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate limit on 6th, got %v", err)
	}
	if err := svc.ProcessContact(ctx, "5.6.7.8", validInput()); err != nil {
		t.Fatalf("other ip should pass: %v", err)
	}
}

func TestProcessContactUpstreamPhoneRejection(t *testing.T) {
	customers := &stubCustomers{upsertErr: fmt.Errorf("phone number is invalid")}
	svc := newService(customers, &stubInquiries{})

	err := svc.ProcessContact(context.Background(), "1.2.3.4", validInput())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected field error, got %v", err)
	}
	if verr.Fields["phone"] == "" {
		t.Fatalf("expected phone message, got %v", verr.Fields)
	}
}

func TestProcessContactUpstreamFailureIsGeneric(t *testing.T) {
	customers := &stubCustomers{upsertErr: errors.New("admin status 500")}
	svc := newService(customers, &stubInquiries{})

	err := svc.ProcessContact(context.Background(), "1.2.3.4", validInput())
	if !errors.Is(err, ErrSubmit) {
		t.Fatalf("expected generic error, got %v", err)
	}
}

func TestProcessContactLocalLogFailureIsSwallowed(t *testing.T) {
	inquiries := &stubInquiries{createErr: errors.New("db down")}
	svc := newService(&stubCustomers{}, inquiries)

	if err := svc.ProcessContact(context.Background(), "1.2.3.4", validInput()); err != nil {
		t.Fatalf("local log failure must not fail the request: %v", err)
	}
}

func TestProcessSubscribe(t *testing.T) {
	customers := &stubCustomers{}
	inquiries := &stubInquiries{}
	svc := newService(customers, inquiries)

	err := svc.ProcessSubscribe(context.Background(), "1.2.3.4", contact.SubscribeInput{Email: "list@example.com"})
	if err != nil {
		t.Fatalf("ProcessSubscribe: %v", err)
	}
	if !customers.lastUpsert.MarketingConsent {
		t.Fatalf("expected marketing consent set: %+v", customers.lastUpsert)
	}
	if len(inquiries.subscribed) != 1 || inquiries.subscribed[0] != "list@example.com" {
		t.Fatalf("subscriber not logged: %v", inquiries.subscribed)
	}
}

func TestProcessSubscribeConflictIsSuccess(t *testing.T) {
	customers := &stubCustomers{upsertErr: fmt.Errorf("customer %w", domain.ErrConflict)}
	svc := newService(customers, &stubInquiries{})

	err := svc.ProcessSubscribe(context.Background(), "1.2.3.4", contact.SubscribeInput{Email: "list@example.com"})
	if err != nil {
		t.Fatalf("already subscribed should succeed: %v", err)
	}
}

func TestProcessSubscribeRateLimit(t *testing.T) {
	svc := newService(&stubCustomers{}, &stubInquiries{})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := svc.ProcessSubscribe(ctx, "1.2.3.4", contact.SubscribeInput{Email: "list@example.com"}); err != nil {
			t.Fatalf("submission %d: %v", i+1, err)
		}
	}
	err := svc.ProcessSubscribe(ctx, "1.2.3.4", contact.SubscribeInput{Email: "list@example.com"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate limit on 11th, got %v", err)
	}
}
