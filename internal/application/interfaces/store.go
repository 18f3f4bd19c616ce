package interfaces

import (
	"context"
	"errors"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

// ErrNotFound is returned by every store when the requested row or object
// does not exist, regardless of backend.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	InsertUser(ctx context.Context, user db.User) (uint64, error)
	GetUserByUsername(ctx context.Context, username string) (*db.User, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type SiteStore interface {
	InsertSite(ctx context.Context, site db.Site) (uint64, error)
	GetSiteByID(ctx context.Context, id uint64) (*db.Site, error)
	GetSiteBySlug(ctx context.Context, slug string) (*db.Site, error)
	ListSitesByOwner(ctx context.Context, userID uint64) ([]db.Site, error)
	UpdateSite(ctx context.Context, site db.Site) error
	DeleteSite(ctx context.Context, id uint64) error
}

type CatalogueStore interface {
	InsertCategory(ctx context.Context, category db.Category) (uint64, error)
	InsertProduct(ctx context.Context, product db.Product) (uint64, error)
	InsertVariant(ctx context.Context, variant db.Variant) (uint64, error)
	// GetCatalogue returns all rows of a site's catalogue, children ordered
	// by id. Assembling the nested tree is left to the caller.
	GetCatalogue(ctx context.Context, siteID uint64) ([]db.Category, []db.Product, []db.Variant, error)
	// DeleteCatalogue removes variants, then products, then categories of a
	// site. The cascade is explicit, it never relies on FK configuration.
	DeleteCatalogue(ctx context.Context, siteID uint64) error
}

// Store is the full relational surface, implemented by both the postgres and
// the sqlite backend.
type Store interface {
	UserStore
	SiteStore
	CatalogueStore
}

// ConfigStore keeps one JSON config document per site slug in object storage.
type ConfigStore interface {
	PutConfig(ctx context.Context, slug string, config dto.SiteConfig) error
	GetConfig(ctx context.Context, slug string) (*dto.SiteConfig, error)
	DeleteConfig(ctx context.Context, slug string) error
}
