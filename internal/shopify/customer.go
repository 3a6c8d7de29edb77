package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-backend/internal/domain"
)

// CustomerUpsert is a create-or-update against the admin API, keyed by email.
// Note is appended to any existing note so the inquiry history accumulates.
type CustomerUpsert struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Note             string
	Tags             []string
	MarketingConsent bool
}

type adminCustomer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Note  string `json:"note"`
	Tags  string `json:"tags"`
}

type marketingConsent struct {
	State          string `json:"state"`
	OptInLevel     string `json:"opt_in_level"`
	ConsentUpdated string `json:"consent_updated_at"`
}

type customerPayload struct {
	Customer struct {
		ID                    int64             `json:"id,omitempty"`
		FirstName             string            `json:"first_name,omitempty"`
		LastName              string            `json:"last_name,omitempty"`
		Email                 string            `json:"email"`
		Phone                 string            `json:"phone,omitempty"`
		Note                  string            `json:"note,omitempty"`
		Tags                  string            `json:"tags,omitempty"`
		EmailMarketingConsent *marketingConsent `json:"email_marketing_consent,omitempty"`
	} `json:"customer"`
}

// UpsertCustomer finds a customer by email and updates it, or creates one.
// Returns the admin customer id.
func (c *Client) UpsertCustomer(ctx context.Context, in CustomerUpsert) (int64, error) {
	existing, err := c.findCustomerByEmail(ctx, in.Email)
	if err != nil {
		return 0, err
	}

	payload := customerPayload{}
	payload.Customer.FirstName = in.FirstName
	payload.Customer.LastName = in.LastName
	payload.Customer.Email = in.Email
	payload.Customer.Phone = in.Phone
	payload.Customer.Note = in.Note
	payload.Customer.Tags = strings.Join(in.Tags, ", ")
	if in.MarketingConsent {
		payload.Customer.EmailMarketingConsent = &marketingConsent{
			State:          "subscribed",
			OptInLevel:     "single_opt_in",
			ConsentUpdated: time.Now().UTC().Format(time.RFC3339),
		}
	}

	if existing != nil {
		payload.Customer.ID = existing.ID
		if existing.Note != "" && in.Note != "" {
			payload.Customer.Note = existing.Note + "\n\n" + in.Note
		}
		if existing.Tags != "" {
			payload.Customer.Tags = mergeTags(existing.Tags, in.Tags)
		}
		if err := c.adminRequest(ctx, http.MethodPut, fmt.Sprintf("customers/%d.json", existing.ID), payload, nil); err != nil {
			return 0, err
		}
		return existing.ID, nil
	}

	var created struct {
		Customer adminCustomer `json:"customer"`
	}
	if err := c.adminRequest(ctx, http.MethodPost, "customers.json", payload, &created); err != nil {
		return 0, err
	}
	return created.Customer.ID, nil
}

func (c *Client) findCustomerByEmail(ctx context.Context, email string) (*adminCustomer, error) {
	path := "customers/search.json?query=" + url.QueryEscape("email:"+email)
	var out struct {
		Customers []adminCustomer `json:"customers"`
	}
	if err := c.adminRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Customers {
		if strings.EqualFold(out.Customers[i].Email, email) {
			return &out.Customers[i], nil
		}
	}
	return nil, nil
}

func (c *Client) adminRequest(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode admin request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.adminURL(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AdminToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("admin request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.adminError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode admin response: %w", err)
		}
	}
	return nil
}

// adminError maps field-level 422s to specific messages; everything else
// collapses to a status error for the caller to genericize.
func (c *Client) adminError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.logger.Printf("shopify: admin status=%d body=%s", resp.StatusCode, payload)

	var fieldErrs struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(payload, &fieldErrs); err == nil {
		if msgs, ok := fieldErrs.Errors["phone"]; ok && len(msgs) > 0 {
			return fmt.Errorf("phone number %s", msgs[0])
		}
		if msgs, ok := fieldErrs.Errors["email"]; ok && len(msgs) > 0 {
			if strings.Contains(msgs[0], "taken") {
				return fmt.Errorf("customer %w", domain.ErrConflict)
			}
			return fmt.Errorf("email address %s", msgs[0])
		}
	}
	return fmt.Errorf("admin status %d", resp.StatusCode)
}

func mergeTags(existing string, incoming []string) string {
	seen := map[string]bool{}
	var merged []string
	for _, t := range strings.Split(existing, ",") {
		t = strings.TrimSpace(t)
		if t != "" && !seen[strings.ToLower(t)] {
			seen[strings.ToLower(t)] = true
			merged = append(merged, t)
		}
	}
	for _, t := range incoming {
		t = strings.TrimSpace(t)
		if t != "" && !seen[strings.ToLower(t)] {
			seen[strings.ToLower(t)] = true
			merged = append(merged, t)
		}
	}
	return strings.Join(merged, ", ")
}
