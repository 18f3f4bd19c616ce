package site

import (
	"context"
	"errors"
	"fmt"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
)

type UpdateSiteConfig struct {
	sites   interfaces.SiteStore
	configs interfaces.ConfigStore
}

func NewUpdateSiteConfig(sites interfaces.SiteStore, configs interfaces.ConfigStore) *UpdateSiteConfig {
	return &UpdateSiteConfig{sites: sites, configs: configs}
}

// Execute overwrites the whole config blob, there is no field merge. Unlike
// the blob writes on site creation and deletion, a storage failure here is
// surfaced to the caller.
func (c *UpdateSiteConfig) Execute(ctx context.Context, id uint64, config *dto.SiteConfig, identity *infraauth.Identity) error {
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

	if err := c.configs.PutConfig(ctx, site.StringID, *config); err != nil {
		return fmt.Errorf("err updating site config, %v", err)
	}
	return nil
}
