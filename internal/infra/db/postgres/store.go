package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/infra/db"
	dbs "github.com/shanedonnelly/devops/pkg/db"
)

// Store is the pgx-backed implementation of the relational store interfaces.
type Store struct {
	uowFactory *dbs.UOWFactory
}

var _ interfaces.Store = (*Store)(nil)

func NewStore(uowFactory *dbs.UOWFactory) *Store {
	return &Store{uowFactory: uowFactory}
}

// Migrate creates the schema. Safe to run on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.uowFactory.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS sites (
			id BIGSERIAL PRIMARY KEY,
			site_name TEXT NOT NULL,
			string_id TEXT UNIQUE NOT NULL,
			user_id BIGINT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			site_id BIGINT NOT NULL REFERENCES sites(id),
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			category_id BIGINT NOT NULL REFERENCES categories(id),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS variants (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id),
			name TEXT NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sites_user ON sites(user_id);
		CREATE INDEX IF NOT EXISTS idx_categories_site ON categories(site_id);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id);
	`)
	if err != nil {
		return fmt.Errorf("migrate failed: %v", err)
	}
	return nil
}

func (s *Store) InsertUser(ctx context.Context, user db.User) (id uint64, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	err = tx.QueryRow(ctx,
		"INSERT INTO users(username, password, created_at) VALUES ($1,$2,$3) RETURNING id",
		user.Username, user.Password, user.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user failed: %v", err)
	}
	return id, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (user *db.User, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	var u db.User
	err = tx.QueryRow(ctx,
		"SELECT id, username, password, created_at FROM users WHERE username = $1", username).
		Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = interfaces.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("query user failed: %v", err)
	}
	return &u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id uint64) (err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user failed: %v", err)
	}
	if tag.RowsAffected() == 0 {
		err = interfaces.ErrNotFound
		return err
	}
	return nil
}

func (s *Store) InsertSite(ctx context.Context, site db.Site) (id uint64, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	err = tx.QueryRow(ctx,
		"INSERT INTO sites(site_name, string_id, user_id, created_at, updated_at) VALUES ($1,$2,$3,$4,$5) RETURNING id",
		site.SiteName, site.StringID, site.UserID, site.CreatedAt, site.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert site failed: %v", err)
	}
	return id, nil
}

func (s *Store) GetSiteByID(ctx context.Context, id uint64) (*db.Site, error) {
	return s.getSite(ctx, "id = $1", id)
}

func (s *Store) GetSiteBySlug(ctx context.Context, slug string) (*db.Site, error) {
	return s.getSite(ctx, "string_id = $1", slug)
}

func (s *Store) getSite(ctx context.Context, where string, arg any) (site *db.Site, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	var st db.Site
	query := "SELECT id, site_name, string_id, user_id, created_at, updated_at FROM sites WHERE " + where
	err = tx.QueryRow(ctx, query, arg).
		Scan(&st.ID, &st.SiteName, &st.StringID, &st.UserID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = interfaces.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("query site failed: %v", err)
	}
	return &st, nil
}

func (s *Store) ListSitesByOwner(ctx context.Context, userID uint64) (sites []db.Site, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	rows, err := tx.Query(ctx,
		"SELECT id, site_name, string_id, user_id, created_at, updated_at FROM sites WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("query sites failed: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st db.Site
		if err = rows.Scan(&st.ID, &st.SiteName, &st.StringID, &st.UserID, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site failed: %v", err)
		}
		sites = append(sites, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read sites failed: %v", err)
	}
	return sites, nil
}

func (s *Store) UpdateSite(ctx context.Context, site db.Site) (err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	tag, err := tx.Exec(ctx,
		"UPDATE sites SET site_name = $1, string_id = $2, updated_at = $3 WHERE id = $4",
		site.SiteName, site.StringID, site.UpdatedAt, site.ID)
	if err != nil {
		return fmt.Errorf("update site failed: %v", err)
	}
	if tag.RowsAffected() == 0 {
		err = interfaces.ErrNotFound
		return err
	}
	return nil
}

func (s *Store) DeleteSite(ctx context.Context, id uint64) (err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	tag, err := tx.Exec(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete site failed: %v", err)
	}
	if tag.RowsAffected() == 0 {
		err = interfaces.ErrNotFound
		return err
	}
	return nil
}

func (s *Store) InsertCategory(ctx context.Context, category db.Category) (id uint64, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	err = tx.QueryRow(ctx,
		"INSERT INTO categories(site_id, name) VALUES ($1,$2) RETURNING id",
		category.SiteID, category.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert category failed: %v", err)
	}
	return id, nil
}

func (s *Store) InsertProduct(ctx context.Context, product db.Product) (id uint64, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	err = tx.QueryRow(ctx,
		"INSERT INTO products(category_id, name, description, price) VALUES ($1,$2,$3,$4) RETURNING id",
		product.CategoryID, product.Name, product.Description, product.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product failed: %v", err)
	}
	return id, nil
}

func (s *Store) InsertVariant(ctx context.Context, variant db.Variant) (id uint64, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return 0, err
	}
	defer uow.Finalize(&err)

	err = tx.QueryRow(ctx,
		"INSERT INTO variants(product_id, name, stock) VALUES ($1,$2,$3) RETURNING id",
		variant.ProductID, variant.Name, variant.Stock).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert variant failed: %v", err)
	}
	return id, nil
}

func (s *Store) GetCatalogue(ctx context.Context, siteID uint64) (categories []db.Category, products []db.Product, variants []db.Variant, err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, nil, nil, err
	}
	defer uow.Finalize(&err)

	rows, err := tx.Query(ctx, "SELECT id, site_id, name FROM categories WHERE site_id = $1 ORDER BY id", siteID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query categories failed: %v", err)
	}
	for rows.Next() {
		var c db.Category
		if err = rows.Scan(&c.ID, &c.SiteID, &c.Name); err != nil {
			rows.Close()
			return nil, nil, nil, fmt.Errorf("scan category failed: %v", err)
		}
		categories = append(categories, c)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("read categories failed: %v", err)
	}

	rows, err = tx.Query(ctx, `SELECT p.id, p.category_id, p.name, p.description, p.price
		FROM products p JOIN categories c ON p.category_id = c.id
		WHERE c.site_id = $1 ORDER BY p.id`, siteID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query products failed: %v", err)
	}
	for rows.Next() {
		var p db.Product
		if err = rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price); err != nil {
			rows.Close()
			return nil, nil, nil, fmt.Errorf("scan product failed: %v", err)
		}
		products = append(products, p)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("read products failed: %v", err)
	}

	rows, err = tx.Query(ctx, `SELECT v.id, v.product_id, v.name, v.stock
		FROM variants v
		JOIN products p ON v.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE c.site_id = $1 ORDER BY v.id`, siteID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query variants failed: %v", err)
	}
	for rows.Next() {
		var v db.Variant
		if err = rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Stock); err != nil {
			rows.Close()
			return nil, nil, nil, fmt.Errorf("scan variant failed: %v", err)
		}
		variants = append(variants, v)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("read variants failed: %v", err)
	}

	return categories, products, variants, nil
}

func (s *Store) DeleteCatalogue(ctx context.Context, siteID uint64) (err error) {
	uow := s.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	_, err = tx.Exec(ctx, `DELETE FROM variants WHERE product_id IN (
		SELECT p.id FROM products p JOIN categories c ON p.category_id = c.id WHERE c.site_id = $1)`, siteID)
	if err != nil {
		return fmt.Errorf("delete variants failed: %v", err)
	}
	_, err = tx.Exec(ctx, `DELETE FROM products WHERE category_id IN (
		SELECT id FROM categories WHERE site_id = $1)`, siteID)
	if err != nil {
		return fmt.Errorf("delete products failed: %v", err)
	}
	_, err = tx.Exec(ctx, "DELETE FROM categories WHERE site_id = $1", siteID)
	if err != nil {
		return fmt.Errorf("delete categories failed: %v", err)
	}
	return nil
}
