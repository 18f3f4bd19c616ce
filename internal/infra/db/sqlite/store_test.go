package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/infra/db"
	"github.com/shanedonnelly/devops/internal/infra/db/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func insertUser(t *testing.T, store *sqlite.Store, username string) uint64 {
	t.Helper()
	id, err := store.InsertUser(context.Background(), db.User{
		Username:  username,
		Password:  "hash",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func insertSite(t *testing.T, store *sqlite.Store, userID uint64, name, slug string) uint64 {
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

func TestInsertAndGetUser(t *testing.T) {
	store := newStore(t)
	id := insertUser(t, store, "alice")

	user, err := store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "hash", user.Password)
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestDeleteUserNotFound(t *testing.T) {
	store := newStore(t)

	err := store.DeleteUser(context.Background(), 999)
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestSiteLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	userID := insertUser(t, store, "alice")

	siteID := insertSite(t, store, userID, "My Shop", "my-shop")

	bySlug, err := store.GetSiteBySlug(ctx, "my-shop")
	require.NoError(t, err)
	require.Equal(t, siteID, bySlug.ID)
	require.Equal(t, userID, bySlug.UserID)

	byID, err := store.GetSiteByID(ctx, siteID)
	require.NoError(t, err)
	require.Equal(t, "My Shop", byID.SiteName)

	byID.SiteName = "New Shop"
	byID.StringID = "new-shop"
	byID.UpdatedAt = time.Now()
	require.NoError(t, store.UpdateSite(ctx, *byID))

	_, err = store.GetSiteBySlug(ctx, "my-shop")
	require.ErrorIs(t, err, interfaces.ErrNotFound)

	require.NoError(t, store.DeleteSite(ctx, siteID))
	_, err = store.GetSiteByID(ctx, siteID)
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestListSitesByOwnerReturnsOnlyOwned(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	alice := insertUser(t, store, "alice")
	bob := insertUser(t, store, "bob")

	insertSite(t, store, alice, "Shop A", "shop-a")
	insertSite(t, store, alice, "Shop B", "shop-b")
	insertSite(t, store, bob, "Shop C", "shop-c")

	sites, err := store.ListSitesByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	require.Equal(t, "shop-a", sites[0].StringID)
	require.Equal(t, "shop-b", sites[1].StringID)
}

func TestCatalogueInsertGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	userID := insertUser(t, store, "alice")
	siteID := insertSite(t, store, userID, "My Shop", "my-shop")

	categoryID, err := store.InsertCategory(ctx, db.Category{SiteID: siteID, Name: "Coffee"})
	require.NoError(t, err)
	productID, err := store.InsertProduct(ctx, db.Product{CategoryID: categoryID, Name: "Beans", Description: "dark roast", Price: 12.5})
	require.NoError(t, err)
	_, err = store.InsertVariant(ctx, db.Variant{ProductID: productID, Name: "250g", Stock: 10})
	require.NoError(t, err)
	_, err = store.InsertVariant(ctx, db.Variant{ProductID: productID, Name: "1kg", Stock: 3})
	require.NoError(t, err)

	categories, products, variants, err := store.GetCatalogue(ctx, siteID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, products, 1)
	require.Len(t, variants, 2)
	require.Equal(t, "Coffee", categories[0].Name)
	require.Equal(t, 12.5, products[0].Price)
	require.Equal(t, "250g", variants[0].Name)

	require.NoError(t, store.DeleteCatalogue(ctx, siteID))

	categories, products, variants, err = store.GetCatalogue(ctx, siteID)
	require.NoError(t, err)
	require.Empty(t, categories)
	require.Empty(t, products)
	require.Empty(t, variants)
}

func TestDeleteCatalogueLeavesOtherSitesAlone(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	userID := insertUser(t, store, "alice")
	siteA := insertSite(t, store, userID, "Shop A", "shop-a")
	siteB := insertSite(t, store, userID, "Shop B", "shop-b")

	catA, err := store.InsertCategory(ctx, db.Category{SiteID: siteA, Name: "A"})
	require.NoError(t, err)
	_, err = store.InsertProduct(ctx, db.Product{CategoryID: catA, Name: "PA"})
	require.NoError(t, err)
	catB, err := store.InsertCategory(ctx, db.Category{SiteID: siteB, Name: "B"})
	require.NoError(t, err)
	_, err = store.InsertProduct(ctx, db.Product{CategoryID: catB, Name: "PB"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCatalogue(ctx, siteA))

	categories, products, _, err := store.GetCatalogue(ctx, siteB)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, products, 1)
}
