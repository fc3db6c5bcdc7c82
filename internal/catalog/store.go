package catalog

import "context"

// Source supplies the immutable product list. Implementations must preserve
// the catalog's original ordering in List.
type Source interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
	Ping(ctx context.Context) error
}
