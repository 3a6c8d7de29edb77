package catalog

import (
	"encoding/json"
	"strings"

	"storefront-backend/internal/domain"
)

// Attribute metafield keys under the "custom" namespace.
const (
	metafieldNamespace = "custom"
	keyCaseColor       = "case_color"
	keyPotency         = "potency"
	keyTerpenes        = "terpenes"
	keyEffects         = "effects"
)

// Potency is lab-reported strength, in percent by weight.
type Potency struct {
	THC float64 `json:"thc"`
	CBD float64 `json:"cbd"`
}

// Terpene is one aromatic compound and its share.
type Terpene struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Attributes is the typed view over a product's free-form metafields. Every
// field decodes-or-defaults: a malformed value yields the zero value, never
// an error, so pages degrade instead of failing.
type Attributes struct {
	CaseColor string    `json:"caseColor,omitempty"`
	Potency   *Potency  `json:"potency,omitempty"`
	Terpenes  []Terpene `json:"terpenes,omitempty"`
	Effects   []string  `json:"effects,omitempty"`
}

// DecodeAttributes parses the known metafields into Attributes.
func DecodeAttributes(fields []domain.Metafield) Attributes {
	var out Attributes

	if f := domain.FindMetafield(fields, metafieldNamespace, keyCaseColor); f != nil {
		out.CaseColor = strings.TrimSpace(f.Value)
	}
	if f := domain.FindMetafield(fields, metafieldNamespace, keyPotency); f != nil {
		var p Potency
		if err := json.Unmarshal([]byte(f.Value), &p); err == nil {
			out.Potency = &p
		}
	}
	if f := domain.FindMetafield(fields, metafieldNamespace, keyTerpenes); f != nil {
		var terpenes []Terpene
		if err := json.Unmarshal([]byte(f.Value), &terpenes); err == nil {
			out.Terpenes = terpenes
		}
	}
	if f := domain.FindMetafield(fields, metafieldNamespace, keyEffects); f != nil {
		out.Effects = decodeStringList(f.Value)
	}
	return out
}

// decodeStringList accepts a JSON string array or a comma-separated plain
// string; anything else is absent.
func decodeStringList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return list
		}
		return nil
	}
	if strings.Contains(raw, ",") {
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	if trimmed != "" {
		return []string{trimmed}
	}
	return nil
}
