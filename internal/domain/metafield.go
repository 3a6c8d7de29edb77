package domain

// Metafield is the platform's typed key/value extension attached to products
// and metaobjects. Values are opaque strings; typed decoding happens at the
// catalog service boundary with decode-or-default semantics.
type Metafield struct {
	Namespace string          `json:"namespace"`
	Key       string          `json:"key"`
	Value     string          `json:"value"`
	Type      string          `json:"type"`
	Reference *MediaReference `json:"reference,omitempty"`
}

// MediaReference is an optional media attachment on a metafield.
type MediaReference struct {
	Image *Image `json:"image,omitempty"`
}

// FindMetafield returns the first metafield matching namespace and key, or nil.
func FindMetafield(fields []Metafield, namespace, key string) *Metafield {
	for i := range fields {
		if fields[i].Namespace == namespace && fields[i].Key == key {
			return &fields[i]
		}
	}
	return nil
}
