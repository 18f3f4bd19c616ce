package query

import (
	"context"
	"fmt"

	"github.com/shanedonnelly/devops/internal/application/interfaces"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

type ListSites struct {
	sites interfaces.SiteStore
}

func NewListSites(store interfaces.SiteStore) *ListSites {
	return &ListSites{sites: store}
}

func (q *ListSites) Query(ctx context.Context, identity *infraauth.Identity) ([]db.Site, error) {
	sites, err := q.sites.ListSitesByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("err listing sites, %v", err)
	}
	return sites, nil
}
