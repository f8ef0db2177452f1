package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a section, subsection, or product id does
// not resolve. Callers surface it as a transient notice, never a crash:
// mid-session the catalog may have been edited by the admin.
var ErrNotFound = errors.New("catalog: not found")

// Store is the durable catalog contract. List operations are paginated
// with 0-based pages and report whether a further page exists. Deletes
// cascade to children.
type Store interface {
	ListSections(ctx context.Context, page, pageSize int) ([]Section, bool, error)
	ListSubsections(ctx context.Context, sectionID int64, page, pageSize int) ([]Subsection, bool, error)
	ListProducts(ctx context.Context, subsectionID int64, page, pageSize int) ([]Product, bool, error)

	GetSection(ctx context.Context, id int64) (Section, error)
	GetSubsection(ctx context.Context, id int64) (Subsection, error)
	GetProduct(ctx context.Context, id int64) (Product, error)

	CountSections(ctx context.Context) (int, error)
	CountSubsections(ctx context.Context, sectionID int64) (int, error)
	CountProducts(ctx context.Context, subsectionID int64) (int, error)

	CreateSection(ctx context.Context, name string) (int64, error)
	DeleteSection(ctx context.Context, id int64) error
	CreateSubsection(ctx context.Context, sectionID int64, name string) (int64, error)
	DeleteSubsection(ctx context.Context, id int64) error
	CreateProduct(ctx context.Context, subsectionID int64, name string, price int64) (int64, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductGetter is the narrow read interface needed to price a cart.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (Product, error)
}
