package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Config carries the store coordinates and API credentials.
type Config struct {
	StoreDomain     string // e.g. "my-shop.myshopify.com"
	StorefrontToken string
	AdminToken      string
	APIVersion      string // e.g. "2024-07"
}

// Client talks to the commerce platform: GraphQL for storefront reads and
// cart mutations, REST for admin-side customer upserts. Calls are never
// retried; callers degrade to "content absent" on failure.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *log.Logger
}

// New builds a Client. A nil logger discards.
func New(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-07"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
		logger:     logger,
	}
}

// baseURL allows a scheme-qualified StoreDomain (used by tests against local
// servers); plain domains get https.
func (c *Client) baseURL() string {
	if strings.Contains(c.cfg.StoreDomain, "://") {
		return strings.TrimSuffix(c.cfg.StoreDomain, "/")
	}
	return "https://" + c.cfg.StoreDomain
}

func (c *Client) storefrontURL() string {
	return fmt.Sprintf("%s/api/%s/graphql.json", c.baseURL(), c.cfg.APIVersion)
}

func (c *Client) adminURL(path string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL(), c.cfg.APIVersion, path)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// GraphQLError is a top-level error in a GraphQL response envelope.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// UserError is a field-scoped mutation error reported inside the payload.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// execute posts a storefront GraphQL operation and decodes the data envelope.
func execute[T any](ctx context.Context, c *Client, query string, variables map[string]any) (T, error) {
	var zero T

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return zero, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.storefrontURL(), bytes.NewReader(body))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.cfg.StorefrontToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("storefront request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Printf("shopify: storefront status=%d body=%s", resp.StatusCode, payload)
		return zero, fmt.Errorf("storefront status %d", resp.StatusCode)
	}

	var envelope graphQLResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return zero, fmt.Errorf("storefront errors: %s", strings.Join(msgs, "; "))
	}
	return envelope.Data, nil
}

func firstUserError(errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("platform rejected the operation: %s", errs[0].Message)
}
