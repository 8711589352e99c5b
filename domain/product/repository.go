package product

import "context"

// Repository persists the Product aggregate.
type Repository interface {
	// Save inserts a new product or performs a version-guarded update.
	// On a version mismatch it returns an error matching
	// ErrConcurrentModification.
	Save(ctx context.Context, p *Product) error

	// FindByID returns an error matching ErrProductNotFound when the
	// id is unknown.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs batch-loads products keyed by id. Missing ids are
	// simply absent from the map; the caller decides whether absence
	// is an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)

	// List returns the catalog, newest first.
	List(ctx context.Context) ([]*Product, error)
}
