package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nikolayk812/carrito/internal/domain"
	"github.com/nikolayk812/carrito/internal/port"
)

var (
	// ErrInvalidQuantity rejects SetQuantity calls below 1. The cart is
	// left untouched; a zero is removal intent and the caller routes it
	// through a removal confirmation instead.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrLineNotFound means no cart line holds the requested product.
	ErrLineNotFound = errors.New("product is not in the cart")

	// ErrPersist marks a mutation that was applied in memory but could
	// not be saved. Callers downgrade it to a warning instead of losing
	// the in-memory state.
	ErrPersist = errors.New("cart could not be persisted")
)

// Store owns one cart and keeps it synchronized to a CartStorage key:
// every mutation is applied in memory and then the whole cart is
// re-serialized under the key. All operations run to completion under
// the store's lock, so no two mutations ever interleave.
type Store struct {
	mu      sync.Mutex
	storage port.CartStorage
	key     string
	logger  *slog.Logger

	cart domain.Cart
}

// Load builds a Store from whatever is persisted under key. An absent or
// malformed value yields an empty cart: corrupt state is logged and
// discarded, never surfaced to the caller. Only a failing storage read
// is an error.
func Load(ctx context.Context, storage port.CartStorage, key string, logger *slog.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{storage: storage, key: key, logger: logger}

	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("storage.Get: %w", err)
	}
	if !ok {
		return s, nil
	}

	cart, err := decodeCart(raw)
	if err != nil {
		logger.Warn("discarding malformed persisted cart",
			slog.String("key", key), slog.Any("err", err))
		return s, nil
	}

	s.cart = cart
	return s, nil
}

// Cart returns a snapshot of the current state.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItemCount()
}

func (s *Store) Total() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// AddItem appends a new line with quantity 1, or increments the quantity
// of the existing line for productID. First-seen title and price are
// authoritative: repeats leave them unchanged. The returned bool is true
// when a new line was appended.
func (s *Store) AddItem(ctx context.Context, productID int64, title string, price domain.Money) (domain.Cart, bool, error) {
	if productID < 1 {
		return domain.Cart{}, false, fmt.Errorf("productID[%d] is not positive", productID)
	}
	if title == "" {
		return domain.Cart{}, false, fmt.Errorf("title is empty")
	}
	if price.IsNegative() {
		return domain.Cart{}, false, fmt.Errorf("price[%s] is negative", price.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	if i := s.cart.Find(productID); i >= 0 {
		s.cart.Lines[i].Quantity++
	} else {
		s.cart.Lines = append(s.cart.Lines, domain.CartLine{
			ProductID: productID,
			Title:     title,
			UnitPrice: price,
			Quantity:  1,
		})
		added = true
	}

	return s.cart.Clone(), added, s.save(ctx)
}

// SetQuantity sets the matching line's quantity exactly, keeping its
// position. Quantities below 1 are rejected without mutating anything.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("quantity[%d]: %w", quantity, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.Find(productID)
	if i < 0 {
		return domain.Cart{}, fmt.Errorf("productID[%d]: %w", productID, ErrLineNotFound)
	}

	s.cart.Lines[i].Quantity = quantity
	return s.cart.Clone(), s.save(ctx)
}

// RemoveItem drops the line for productID. Removing an absent product is
// a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID int64) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.Find(productID)
	if i < 0 {
		return s.cart.Clone(), nil
	}

	s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
	return s.cart.Clone(), s.save(ctx)
}

// Clear empties the cart, the terminal step of a confirmed checkout.
func (s *Store) Clear(ctx context.Context) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{}
	return domain.Cart{}, s.save(ctx)
}

// save re-serializes the whole cart under the store's key. A failure is
// wrapped in ErrPersist; the in-memory mutation stays applied.
func (s *Store) save(ctx context.Context) error {
	raw, err := encodeCart(s.cart)
	if err != nil {
		return errors.Join(ErrPersist, fmt.Errorf("encodeCart: %w", err))
	}

	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return errors.Join(ErrPersist, fmt.Errorf("storage.Set: %w", err))
	}

	return nil
}
