package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/infra/db"
	"github.com/shanedonnelly/devops/internal/infra/db/postgres"
	"github.com/shanedonnelly/devops/internal/testinfra"
	dbs "github.com/shanedonnelly/devops/pkg/db"
	"github.com/stretchr/testify/require"
)

var store *postgres.Store

func TestMain(m *testing.M) {
	pool := testinfra.SetupDB()
	store = postgres.NewStore(dbs.NewUoWFactory(pool))
	if err := store.Migrate(context.Background()); err != nil {
		panic(err)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func insertUser(t *testing.T, username string) uint64 {
	t.Helper()
	id, err := store.InsertUser(context.Background(), db.User{
		Username:  username,
		Password:  "hash",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func insertSite(t *testing.T, userID uint64, name, slug string) uint64 {
	t.Helper()
	id, err := store.InsertSite(context.Background(), db.Site{
		SiteName:  name,
		StringID:  slug,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	id := insertUser(t, "pg-alice")

	user, err := store.GetUserByUsername(ctx, "pg-alice")
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "hash", user.Password)

	require.NoError(t, store.DeleteUser(ctx, id))
	_, err = store.GetUserByUsername(ctx, "pg-alice")
	require.ErrorIs(t, err, interfaces.ErrNotFound)
	require.ErrorIs(t, store.DeleteUser(ctx, id), interfaces.ErrNotFound)
}

func TestSiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	userID := insertUser(t, "pg-bob")
	siteID := insertSite(t, userID, "My Shop", "pg-my-shop")

	site, err := store.GetSiteBySlug(ctx, "pg-my-shop")
	require.NoError(t, err)
	require.Equal(t, siteID, site.ID)
	require.Equal(t, userID, site.UserID)

	site.SiteName = "New Shop"
	site.StringID = "pg-new-shop"
	site.UpdatedAt = time.Now()
	require.NoError(t, store.UpdateSite(ctx, *site))

	_, err = store.GetSiteBySlug(ctx, "pg-my-shop")
	require.ErrorIs(t, err, interfaces.ErrNotFound)

	sites, err := store.ListSitesByOwner(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	require.Equal(t, "pg-new-shop", sites[0].StringID)

	require.NoError(t, store.DeleteSite(ctx, siteID))
	_, err = store.GetSiteByID(ctx, siteID)
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestCatalogueRoundTrip(t *testing.T) {
	ctx := context.Background()
	userID := insertUser(t, "pg-carol")
	siteID := insertSite(t, userID, "Cat Shop", "pg-cat-shop")

	categoryID, err := store.InsertCategory(ctx, db.Category{SiteID: siteID, Name: "Tea"})
	require.NoError(t, err)
	productID, err := store.InsertProduct(ctx, db.Product{CategoryID: categoryID, Name: "Sencha", Description: "green", Price: 8.0})
	require.NoError(t, err)
	_, err = store.InsertVariant(ctx, db.Variant{ProductID: productID, Name: "50g", Stock: 5})
	require.NoError(t, err)

	categories, products, variants, err := store.GetCatalogue(ctx, siteID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, products, 1)
	require.Len(t, variants, 1)
	require.Equal(t, "Tea", categories[0].Name)
	require.Equal(t, "Sencha", products[0].Name)
	require.Equal(t, 5, variants[0].Stock)

	require.NoError(t, store.DeleteCatalogue(ctx, siteID))
	categories, products, variants, err = store.GetCatalogue(ctx, siteID)
	require.NoError(t, err)
	require.Empty(t, categories)
	require.Empty(t, products)
	require.Empty(t, variants)
}
