package catalogue

import (
	"context"
	"errors"
	"fmt"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
)

type ReplaceCatalogue struct {
	sites     interfaces.SiteStore
	catalogue interfaces.CatalogueStore
}

func NewReplaceCatalogue(store interfaces.Store) *ReplaceCatalogue {
	return &ReplaceCatalogue{sites: store, catalogue: store}
}

// Execute swaps the site's whole catalogue for the submitted tree: existing
// categories are removed and the payload is recreated in document order.
// Omitted items are gone afterwards and child ids are not preserved.
func (c *ReplaceCatalogue) Execute(ctx context.Context, siteSlug string, req *dto.CatalogueUpdate, identity *infraauth.Identity) error {
	site, err := c.sites.GetSiteBySlug(ctx, siteSlug)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return errs.NotFoundError{Err: errors.New("site not found")}
		}
		return fmt.Errorf("err getting site, %v", err)
	}
	if site.UserID != identity.UserID {
		return errs.PermissionsError{Err: errors.New("not authorized")}
	}

	if err := c.catalogue.DeleteCatalogue(ctx, site.ID); err != nil {
		return fmt.Errorf("err deleting existing catalogue, %v", err)
	}

	for _, categoryData := range req.Categories {
		categoryID, err := c.catalogue.InsertCategory(ctx, db.Category{
			SiteID: site.ID,
			Name:   categoryData.Name,
		})
		if err != nil {
			return fmt.Errorf("err creating category, %v", err)
		}
		for _, productData := range categoryData.Products {
			productID, err := c.catalogue.InsertProduct(ctx, db.Product{
				CategoryID:  categoryID,
				Name:        productData.Name,
				Description: productData.Description,
				Price:       productData.Price,
			})
			if err != nil {
				return fmt.Errorf("err creating product, %v", err)
			}
			for _, variantData := range productData.Variants {
				_, err := c.catalogue.InsertVariant(ctx, db.Variant{
					ProductID: productID,
					Name:      variantData.Name,
					Stock:     variantData.Stock,
				})
				if err != nil {
					return fmt.Errorf("err creating variant, %v", err)
				}
			}
		}
	}
	return nil
}
