package port

import (
	"context"

	"github.com/nikolayk812/carrito/internal/domain"
)

// CartStorage is a durable key-value string store, the persistence
// collaborator behind the cart. Get reports absence via the bool,
// not an error.
type CartStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Catalog lists products from the remote catalog collaborator.
type Catalog interface {
	Products(ctx context.Context) ([]domain.ProductSummary, error)
}
