package shopify

import (
	"context"

	"storefront-backend/internal/domain"
)

// Metaobject is a standalone content object: ordered typed fields keyed by
// name. Returned verbatim to the frontend as JSON.
type Metaobject struct {
	Handle string            `json:"handle"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields"`
}

// GetMetaobject fetches a named content object, used for the header banner.
func (c *Client) GetMetaobject(ctx context.Context, handle, objType string) (*Metaobject, error) {
	query := `query getMetaobject($handle: MetaobjectHandleInput!) {
  metaobject(handle: $handle) {
    handle
    type
    fields { key value }
  }
}`
	data, err := execute[struct {
		Metaobject *struct {
			Handle string `json:"handle"`
			Type   string `json:"type"`
			Fields []struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			} `json:"fields"`
		} `json:"metaobject"`
	}](ctx, c, query, map[string]any{"handle": map[string]any{"handle": handle, "type": objType}})
	if err != nil {
		return nil, err
	}
	if data.Metaobject == nil {
		return nil, domain.ErrNotFound
	}

	out := &Metaobject{
		Handle: data.Metaobject.Handle,
		Type:   data.Metaobject.Type,
		Fields: make(map[string]string, len(data.Metaobject.Fields)),
	}
	for _, f := range data.Metaobject.Fields {
		out.Fields[f.Key] = f.Value
	}
	return out, nil
}
