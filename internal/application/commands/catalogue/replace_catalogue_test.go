package catalogue_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shanedonnelly/devops/internal/application/commands/catalogue"
	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/errs"
	"github.com/shanedonnelly/devops/internal/application/query"
	infraauth "github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/db"
	"github.com/shanedonnelly/devops/internal/infra/db/sqlite"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *sqlite.Store
	replace *catalogue.ReplaceCatalogue
	get     *query.GetCatalogue
	owner   *infraauth.Identity
	siteID  uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))

	userID, err := store.InsertUser(ctx, db.User{Username: "alice", Password: "hash", CreatedAt: time.Now()})
	require.NoError(t, err)
	siteID, err := store.InsertSite(ctx, db.Site{
		SiteName:  "My Shop",
		StringID:  "my-shop",
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	return &fixture{
		store:   store,
		replace: catalogue.NewReplaceCatalogue(store),
		get:     query.NewGetCatalogue(store),
		owner:   &infraauth.Identity{UserID: userID},
		siteID:  siteID,
	}
}

func TestReplaceCatalogueRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	update := &dto.CatalogueUpdate{Categories: []dto.CategoryPayload{
		{
			Name: "Coffee",
			Products: []dto.ProductPayload{
				{
					Name:        "Beans",
					Description: "dark roast",
					Price:       12.5,
					Variants: []dto.VariantPayload{
						{Name: "250g", Stock: 10},
						{Name: "1kg", Stock: 3},
					},
				},
			},
		},
		{Name: "Tea"},
	}}
	require.NoError(t, f.replace.Execute(ctx, "my-shop", update, f.owner))

	resp, err := f.get.Query(ctx, "my-shop")
	require.NoError(t, err)
	require.Len(t, resp.Categories, 2)

	coffee := resp.Categories[0]
	require.Equal(t, "Coffee", coffee.Name)
	require.Equal(t, f.siteID, coffee.SiteID)
	require.Len(t, coffee.Products, 1)
	require.Equal(t, "Beans", coffee.Products[0].Name)
	require.Equal(t, 12.5, coffee.Products[0].Price)
	require.Len(t, coffee.Products[0].Variants, 2)
	require.Equal(t, "250g", coffee.Products[0].Variants[0].Name)
	require.Equal(t, 3, coffee.Products[0].Variants[1].Stock)

	tea := resp.Categories[1]
	require.Equal(t, "Tea", tea.Name)
	require.Empty(t, tea.Products)
	require.NotNil(t, tea.Products)
}

func TestReplaceCatalogueDropsOmittedItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := &dto.CatalogueUpdate{Categories: []dto.CategoryPayload{
		{Name: "Coffee", Products: []dto.ProductPayload{{Name: "Beans", Price: 12.5}}},
		{Name: "Tea"},
	}}
	require.NoError(t, f.replace.Execute(ctx, "my-shop", first, f.owner))

	second := &dto.CatalogueUpdate{Categories: []dto.CategoryPayload{{Name: "Tea"}}}
	require.NoError(t, f.replace.Execute(ctx, "my-shop", second, f.owner))

	resp, err := f.get.Query(ctx, "my-shop")
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	require.Equal(t, "Tea", resp.Categories[0].Name)
	require.Empty(t, resp.Categories[0].Products)
}

func TestReplaceCatalogueEmptyPayloadClearsSite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := &dto.CatalogueUpdate{Categories: []dto.CategoryPayload{{Name: "Coffee"}}}
	require.NoError(t, f.replace.Execute(ctx, "my-shop", first, f.owner))

	require.NoError(t, f.replace.Execute(ctx, "my-shop", &dto.CatalogueUpdate{}, f.owner))

	resp, err := f.get.Query(ctx, "my-shop")
	require.NoError(t, err)
	require.Empty(t, resp.Categories)
	require.NotNil(t, resp.Categories)
}

func TestReplaceCatalogueRejectsNonOwner(t *testing.T) {
	f := newFixture(t)

	err := f.replace.Execute(context.Background(), "my-shop", &dto.CatalogueUpdate{}, &infraauth.Identity{UserID: f.owner.UserID + 1})
	var permissions errs.PermissionsError
	require.ErrorAs(t, err, &permissions)
}

func TestReplaceCatalogueUnknownSite(t *testing.T) {
	f := newFixture(t)

	var notFound errs.NotFoundError
	err := f.replace.Execute(context.Background(), "no-such-site", &dto.CatalogueUpdate{}, f.owner)
	require.ErrorAs(t, err, &notFound)

	_, err = f.get.Query(context.Background(), "no-such-site")
	require.ErrorAs(t, err, &notFound)
}
