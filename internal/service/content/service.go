package content

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"storefront-backend/internal/cache"
	"storefront-backend/internal/shopify"
)

type contentClient interface {
	GetMetaobject(ctx context.Context, handle, objType string) (*shopify.Metaobject, error)
}

// Header is the site chrome content served to every page: announcement bar,
// navigation labels, whatever the merchant keys under the header metaobject.
type Header struct {
	Fields map[string]string `json:"fields"`
}

// Service proxies merchant-editable content from the platform, cached under
// the shared content tag so one invalidation refreshes all of it.
type Service struct {
	platform contentClient
	cache    cache.Store
	ttl      time.Duration
	logger   *log.Logger
}

func New(platform contentClient, store cache.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{platform: platform, cache: store, ttl: 5 * time.Minute, logger: logger}
}

// Header returns the header metaobject, served from cache when fresh.
func (s *Service) Header(ctx context.Context) (*Header, error) {
	const key = "content:header"
	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var cached Header
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	obj, err := s.platform.GetMetaobject(ctx, "header", "site_header")
	if err != nil {
		return nil, err
	}
	header := &Header{Fields: obj.Fields}

	if raw, err := json.Marshal(header); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl, cache.ContentTag); err != nil {
			s.logger.Printf("content: cache set: %v", err)
		}
	}
	return header, nil
}

// Invalidate drops all cached content, forcing the next read upstream.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, cache.ContentTag)
}
