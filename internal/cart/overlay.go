package cart

import (
	"sync"

	"github.com/google/uuid"

	"storefront-backend/internal/domain"
)

type pendingOp struct {
	id    uuid.UUID
	apply func(domain.Cart) domain.Cart
}

// Overlay replays not-yet-confirmed optimistic actions on top of the latest
// server-confirmed cart. Every action carries a correlation id so a failed
// remote call can be reverted explicitly instead of waiting for the next
// background re-fetch.
type Overlay struct {
	mu      sync.Mutex
	base    domain.Cart
	pending []pendingOp
}

// NewOverlay starts an overlay over the given base cart.
func NewOverlay(base domain.Cart) *Overlay {
	return &Overlay{base: base}
}

// AddItem records an optimistic add and returns its correlation id.
func (o *Overlay) AddItem(variant domain.ProductVariant, product domain.Product) uuid.UUID {
	return o.push(func(c domain.Cart) domain.Cart {
		return AddItem(c, variant, product)
	})
}

// UpdateItem records an optimistic quantity change and returns its
// correlation id.
func (o *Overlay) UpdateItem(merchandiseID string, t UpdateType) uuid.UUID {
	return o.push(func(c domain.Cart) domain.Cart {
		return UpdateItem(c, merchandiseID, t)
	})
}

func (o *Overlay) push(apply func(domain.Cart) domain.Cart) uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := uuid.New()
	o.pending = append(o.pending, pendingOp{id: id, apply: apply})
	return id
}

// Current folds the pending actions over the base cart in dispatch order.
func (o *Overlay) Current() domain.Cart {
	o.mu.Lock()
	defer o.mu.Unlock()
	c := o.base
	for _, op := range o.pending {
		c = op.apply(c)
	}
	return c
}

// Rebase replaces the base with a newer server-confirmed cart. Pending actions
// keep replaying on top of the new base.
func (o *Overlay) Rebase(base domain.Cart) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.base = base
}

// Confirm drops a pending action whose effect is now reflected in the server
// cart. Call after Rebase with the mutation's confirmed state.
func (o *Overlay) Confirm(id uuid.UUID) {
	o.remove(id)
}

// Revert drops a pending action whose remote call failed; later pending
// actions are re-applied without it.
func (o *Overlay) Revert(id uuid.UUID) {
	o.remove(id)
}

func (o *Overlay) remove(id uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, op := range o.pending {
		if op.id == id {
			o.pending = append(o.pending[:i], o.pending[i+1:]...)
			return
		}
	}
}

// PendingCount reports how many optimistic actions await confirmation.
func (o *Overlay) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}
