package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
)

type GetSiteConfig struct {
	configs interfaces.ConfigStore
}

func NewGetSiteConfig(configs interfaces.ConfigStore) *GetSiteConfig {
	return &GetSiteConfig{configs: configs}
}

// Query reads the config blob by slug. Public, no ownership check. Absence of
// the blob is a valid state until the first write.
func (q *GetSiteConfig) Query(ctx context.Context, siteSlug string) (*dto.SiteConfig, error) {
	config, err := q.configs.GetConfig(ctx, siteSlug)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, errs.NotFoundError{Err: errors.New("site config not found")}
		}
		return nil, fmt.Errorf("err getting site config, %v", err)
	}
	return config, nil
}
