package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/domain/slug"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

type UpdateSite struct {
	sites interfaces.SiteStore
}

func NewUpdateSite(store interfaces.SiteStore) *UpdateSite {
	return &UpdateSite{sites: store}
}

// Execute renames the site and recomputes its slug. A missing site and a site
// owned by someone else are indistinguishable to the caller.
func (c *UpdateSite) Execute(ctx context.Context, id uint64, req *dto.UpdateSiteRequest, identity *infraauth.Identity) (*db.Site, error) {
	existing, err := c.sites.GetSiteByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, errs.NotFoundError{Err: errors.New("site not found")}
		}
		return nil, fmt.Errorf("err getting site, %v", err)
	}
	if existing.UserID != identity.UserID {
		return nil, errs.NotFoundError{Err: errors.New("site not found")}
	}

	newStringID := slug.Derive(req.SiteName)
	if newStringID != existing.StringID {
		_, err := c.sites.GetSiteBySlug(ctx, newStringID)
		if err == nil {
			return nil, errs.ConflictError{Err: errors.New("site with this name already exists")}
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, fmt.Errorf("err checking slug collision, %v", err)
		}
	}

	updated := db.Site{
		ID:        existing.ID,
		SiteName:  req.SiteName,
		StringID:  newStringID,
		UserID:    existing.UserID,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if err := c.sites.UpdateSite(ctx, updated); err != nil {
		return nil, fmt.Errorf("err updating site, %v", err)
	}
	return &updated, nil
}
