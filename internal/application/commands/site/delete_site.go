package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
)

type DeleteSite struct {
	sites     interfaces.SiteStore
	catalogue interfaces.CatalogueStore
	configs   interfaces.ConfigStore
}

func NewDeleteSite(store interfaces.Store, configs interfaces.ConfigStore) *DeleteSite {
	return &DeleteSite{sites: store, catalogue: store, configs: configs}
}

// Execute deletes the site, its catalogue and, best-effort, its config blob.
func (c *DeleteSite) Execute(ctx context.Context, id uint64, identity *infraauth.Identity) error {
	site, err := c.sites.GetSiteByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return errs.NotFoundError{Err: errors.New("site not found")}
		}
		return fmt.Errorf("err getting site, %v", err)
	}
	if site.UserID != identity.UserID {
		return errs.NotFoundError{Err: errors.New("site not found")}
	}

	if err := c.configs.DeleteConfig(ctx, site.StringID); err != nil {
		slog.Error("error deleting config blob", "slug", site.StringID, "err", err)
	}

	if err := c.catalogue.DeleteCatalogue(ctx, site.ID); err != nil {
		return fmt.Errorf("err deleting site catalogue, %v", err)
	}
	if err := c.sites.DeleteSite(ctx, site.ID); err != nil {
		return fmt.Errorf("err deleting site, %v", err)
	}
	return nil
}
