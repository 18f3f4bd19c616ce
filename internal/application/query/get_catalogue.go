package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
)

type GetCatalogue struct {
	sites     interfaces.SiteStore
	catalogue interfaces.CatalogueStore
}

func NewGetCatalogue(store interfaces.Store) *GetCatalogue {
	return &GetCatalogue{sites: store, catalogue: store}
}

// Query loads the site's full catalogue and assembles the nested
// categories -> products -> variants tree. Public, no ownership check.
func (q *GetCatalogue) Query(ctx context.Context, siteSlug string) (*dto.CatalogueResponse, error) {
	site, err := q.sites.GetSiteBySlug(ctx, siteSlug)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, errs.NotFoundError{Err: errors.New("site not found")}
		}
		return nil, fmt.Errorf("err getting site, %v", err)
	}

	categories, products, variants, err := q.catalogue.GetCatalogue(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("err loading catalogue, %v", err)
	}

	variantsByProduct := make(map[uint64][]dto.VariantResponse)
	for _, v := range variants {
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], dto.VariantResponse{
			ID:        v.ID,
			Name:      v.Name,
			Stock:     v.Stock,
			ProductID: v.ProductID,
		})
	}

	productsByCategory := make(map[uint64][]dto.ProductResponse)
	for _, p := range products {
		productVariants := variantsByProduct[p.ID]
		if productVariants == nil {
			productVariants = []dto.VariantResponse{}
		}
		productsByCategory[p.CategoryID] = append(productsByCategory[p.CategoryID], dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			CategoryID:  p.CategoryID,
			Variants:    productVariants,
		})
	}

	resp := &dto.CatalogueResponse{Categories: []dto.CategoryResponse{}}
	for _, c := range categories {
		categoryProducts := productsByCategory[c.ID]
		if categoryProducts == nil {
			categoryProducts = []dto.ProductResponse{}
		}
		resp.Categories = append(resp.Categories, dto.CategoryResponse{
			ID:       c.ID,
			Name:     c.Name,
			SiteID:   c.SiteID,
			Products: categoryProducts,
		})
	}
	return resp, nil
}
