package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shanedonnelly/devops/internal/application/consts"
	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/domain/slug"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

type CreateSite struct {
	sites     interfaces.SiteStore
	catalogue interfaces.CatalogueStore
	configs   interfaces.ConfigStore
}

func NewCreateSite(store interfaces.Store, configs interfaces.ConfigStore) *CreateSite {
	return &CreateSite{sites: store, catalogue: store, configs: configs}
}

// Execute creates the site plus its default catalogue entries and an empty
// config blob. The blob write is best-effort: the two stores share no
// transaction, so a storage failure is logged and the site stays created.
func (c *CreateSite) Execute(ctx context.Context, req *dto.CreateSiteRequest, identity *infraauth.Identity) (*db.Site, error) {
	stringID := slug.Derive(req.SiteName)

	_, err := c.sites.GetSiteBySlug(ctx, stringID)
	if err == nil {
		return nil, errs.ConflictError{Err: errors.New("site with this name already exists")}
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("err checking existing site, %v", err)
	}

	newSite := db.Site{
		SiteName:  req.SiteName,
		StringID:  stringID,
		UserID:    identity.UserID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	newSite.ID, err = c.sites.InsertSite(ctx, newSite)
	if err != nil {
		return nil, fmt.Errorf("err creating site, %v", err)
	}

	categoryID, err := c.catalogue.InsertCategory(ctx, db.Category{
		SiteID: newSite.ID,
		Name:   consts.DefaultCategoryName,
	})
	if err != nil {
		return nil, fmt.Errorf("err creating default category, %v", err)
	}
	productID, err := c.catalogue.InsertProduct(ctx, db.Product{
		CategoryID: categoryID,
		Name:       consts.DefaultProductName,
	})
	if err != nil {
		return nil, fmt.Errorf("err creating default product, %v", err)
	}
	_, err = c.catalogue.InsertVariant(ctx, db.Variant{
		ProductID: productID,
		Name:      consts.DefaultVariantName,
	})
	if err != nil {
		return nil, fmt.Errorf("err creating default variant, %v", err)
	}

	if err := c.configs.PutConfig(ctx, stringID, dto.SiteConfig{}); err != nil {
		slog.Error("error creating default config blob", "slug", stringID, "err", err)
	}

	return &newSite, nil
}
