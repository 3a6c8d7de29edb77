package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/cache"
	cartstate "storefront-backend/internal/cart"
	"storefront-backend/internal/domain"
	"storefront-backend/internal/shopify"
)

// User-facing failure messages. Forms render these verbatim, so they stay
// plain strings rather than structured errors.
var (
	ErrItemNotFound = errors.New("item not found in cart")
	ErrAddItem      = errors.New("error adding item to cart")
	ErrRemoveItem   = errors.New("error removing item from cart")
	ErrUpdateItem   = errors.New("error updating item quantity")
	ErrFetchCart    = errors.New("error fetching cart")
)

type platformClient interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*domain.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []shopify.CartLineUpdateInput) (*domain.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
}

// Service bridges cart mutations to the platform: ensure a cart exists, stage
// the optimistic effect, run the mutation, invalidate the cached read so the
// next fetch sees the server's state. While a mutation is in flight, reads
// fold the pending action over the confirmed cart; a platform failure reverts
// it. Nothing is retried.
type Service struct {
	platform platformClient
	cache    cache.Store
	cartTTL  time.Duration
	logger   *log.Logger

	mu       sync.Mutex
	overlays map[string]*cartstate.Overlay
}

// New builds the bridge. A nil logger discards.
func New(platform platformClient, store cache.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		platform: platform,
		cache:    store,
		cartTTL:  time.Minute,
		logger:   logger,
		overlays: make(map[string]*cartstate.Overlay),
	}
}

func cartKey(cartID string) string { return "cart:" + cartID }

// EnsureCart returns a usable cart id, creating a platform cart when none
// exists yet. created tells the handler to refresh the cart cookie.
func (s *Service) EnsureCart(ctx context.Context, cartID string) (string, bool, error) {
	if cartID != "" {
		return cartID, false, nil
	}
	created, err := s.platform.CreateCart(ctx)
	if err != nil {
		s.logger.Printf("cart bridge: create cart: %v", err)
		return "", false, ErrFetchCart
	}
	return created.ID, true, nil
}

// Get returns the cart as the shopper should see it: the server-confirmed
// state (served from cache when fresh) with any in-flight optimistic actions
// folded on top. An empty cart id yields an empty local cart, not an error.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		empty := cartstate.NewEmptyCart()
		return &empty, nil
	}

	confirmed, err := s.confirmed(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if o := s.peekOverlay(cartID); o != nil {
		o.Rebase(*confirmed)
		current := o.Current()
		return &current, nil
	}
	return confirmed, nil
}

// confirmed returns the server-confirmed cart, cached under the cart's tag.
func (s *Service) confirmed(ctx context.Context, cartID string) (*domain.Cart, error) {
	key := cartKey(cartID)
	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var cached domain.Cart
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	fetched, err := s.platform.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Expired server-side; hand back an empty cart.
			empty := cartstate.NewEmptyCart()
			return &empty, nil
		}
		s.logger.Printf("cart bridge: get cart %s: %v", cartID, err)
		return nil, ErrFetchCart
	}

	if raw, err := json.Marshal(fetched); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cartTTL, cache.CartTag(cartID)); err != nil {
			s.logger.Printf("cart bridge: cache set %s: %v", cartID, err)
		}
	}
	return fetched, nil
}

// AddItem adds one unit of a merchandise id, creating the cart if needed.
// Returns the (possibly new) cart id alongside the confirmed cart.
func (s *Service) AddItem(ctx context.Context, cartID, merchandiseID string) (string, *domain.Cart, error) {
	id, _, err := s.EnsureCart(ctx, cartID)
	if err != nil {
		return "", nil, ErrAddItem
	}

	o, opID, staged := s.stageAdd(ctx, id, merchandiseID)
	updated, err := s.platform.AddCartLines(ctx, id, []shopify.CartLineInput{{MerchandiseID: merchandiseID, Quantity: 1}})
	if err != nil {
		if staged {
			o.Revert(opID)
		}
		s.releaseOverlay(id, o)
		s.logger.Printf("cart bridge: add lines cart=%s merchandise=%s: %v", id, merchandiseID, err)
		return id, nil, ErrAddItem
	}

	o.Rebase(*updated)
	if staged {
		o.Confirm(opID)
	}
	s.releaseOverlay(id, o)
	s.invalidate(ctx, id)
	return id, updated, nil
}

// stageAdd records the optimistic effect of an add. Adding merchandise the
// cart already holds is a quantity bump the overlay can show immediately; a
// brand-new line has no local variant snapshot and waits for the platform
// cart.
func (s *Service) stageAdd(ctx context.Context, cartID, merchandiseID string) (*cartstate.Overlay, uuid.UUID, bool) {
	base := cartstate.NewEmptyCart()
	if raw, ok, err := s.cache.Get(ctx, cartKey(cartID)); err == nil && ok {
		if err := json.Unmarshal(raw, &base); err != nil {
			base = cartstate.NewEmptyCart()
		}
	}

	o := s.overlayFor(cartID, base)
	current := o.Current()
	for i := range current.Lines {
		if current.Lines[i].Merchandise.ID == merchandiseID {
			return o, o.UpdateItem(merchandiseID, cartstate.UpdatePlus), true
		}
	}
	return o, uuid.UUID{}, false
}

// UpdateItem applies plus/minus/delete to the line holding merchandiseID.
// Quantities that reach zero remove the line on the platform too.
func (s *Service) UpdateItem(ctx context.Context, cartID, merchandiseID string, t cartstate.UpdateType) (*domain.Cart, error) {
	if cartID == "" {
		return nil, ErrFetchCart
	}
	current, err := s.platform.GetCart(ctx, cartID)
	if err != nil {
		s.logger.Printf("cart bridge: get cart %s: %v", cartID, err)
		return nil, ErrFetchCart
	}

	var line *domain.CartLine
	for i := range current.Lines {
		if current.Lines[i].Merchandise.ID == merchandiseID {
			line = &current.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, ErrItemNotFound
	}

	quantity := line.Quantity
	switch t {
	case cartstate.UpdatePlus:
		quantity++
	case cartstate.UpdateMinus:
		quantity--
	case cartstate.UpdateDelete:
		quantity = 0
	default:
		return nil, ErrUpdateItem
	}

	o := s.overlayFor(cartID, *current)
	opID := o.UpdateItem(merchandiseID, t)

	var updated *domain.Cart
	if quantity <= 0 {
		updated, err = s.platform.RemoveCartLines(ctx, cartID, []string{line.ID})
		if err != nil {
			o.Revert(opID)
			s.releaseOverlay(cartID, o)
			s.logger.Printf("cart bridge: remove line cart=%s line=%s: %v", cartID, line.ID, err)
			return nil, ErrRemoveItem
		}
	} else {
		updated, err = s.platform.UpdateCartLines(ctx, cartID, []shopify.CartLineUpdateInput{{LineID: line.ID, Quantity: quantity}})
		if err != nil {
			o.Revert(opID)
			s.releaseOverlay(cartID, o)
			s.logger.Printf("cart bridge: update line cart=%s line=%s: %v", cartID, line.ID, err)
			return nil, ErrUpdateItem
		}
	}

	o.Rebase(*updated)
	o.Confirm(opID)
	s.releaseOverlay(cartID, o)
	s.invalidate(ctx, cartID)
	return updated, nil
}

// CheckoutURL returns the platform's checkout handoff URL for the confirmed
// cart. Without a cart this is a no-op, reported as an empty URL.
func (s *Service) CheckoutURL(ctx context.Context, cartID string) (string, error) {
	if cartID == "" {
		return "", nil
	}
	current, err := s.platform.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		s.logger.Printf("cart bridge: checkout cart=%s: %v", cartID, err)
		return "", ErrFetchCart
	}
	return current.CheckoutURL, nil
}

// overlayFor returns the cart's live overlay, creating one over base when none
// exists. A stale base only lasts until the owning mutation's next Rebase.
func (s *Service) overlayFor(cartID string, base domain.Cart) *cartstate.Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.overlays[cartID]; ok {
		return o
	}
	o := cartstate.NewOverlay(base)
	s.overlays[cartID] = o
	return o
}

func (s *Service) peekOverlay(cartID string) *cartstate.Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlays[cartID]
}

// releaseOverlay drops the overlay once nothing is pending on it, keeping the
// table bounded by carts with in-flight mutations.
func (s *Service) releaseOverlay(cartID string, o *cartstate.Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.PendingCount() == 0 {
		delete(s.overlays, cartID)
	}
}

func (s *Service) invalidate(ctx context.Context, cartID string) {
	if err := s.cache.Invalidate(ctx, cache.CartTag(cartID)); err != nil {
		s.logger.Printf("cart bridge: invalidate cart=%s: %v", cartID, err)
	}
}
