package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/infra/db"

	_ "modernc.org/sqlite"
)

// Store is the SQLite implementation of the relational store interfaces. It
// is interchangeable with the postgres backend and needs no external services,
// which also makes it the backend of choice for in-process tests.
type Store struct {
	db *sql.DB
}

var _ interfaces.Store = (*Store)(nil)

func New(path string) (*Store, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: handle}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS sites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site_name TEXT NOT NULL,
		string_id TEXT UNIQUE NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site_id INTEGER NOT NULL REFERENCES sites(id),
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_id INTEGER NOT NULL REFERENCES categories(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS variants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products(id),
		name TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sites_user ON sites(user_id);
	CREATE INDEX IF NOT EXISTS idx_categories_site ON categories(site_id);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *Store) InsertUser(ctx context.Context, user db.User) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(username, password, created_at) VALUES (?,?,?)",
		user.Username, user.Password, user.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert user failed: %v", err)
	}
	return lastInsertID(res)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*db.User, error) {
	var u db.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("query user failed: %v", err)
	}
	return &u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user failed: %v", err)
	}
	return requireAffected(res)
}

func (s *Store) InsertSite(ctx context.Context, site db.Site) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sites(site_name, string_id, user_id, created_at, updated_at) VALUES (?,?,?,?,?)",
		site.SiteName, site.StringID, site.UserID, site.CreatedAt, site.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert site failed: %v", err)
	}
	return lastInsertID(res)
}

func (s *Store) GetSiteByID(ctx context.Context, id uint64) (*db.Site, error) {
	return s.getSite(ctx, "id = ?", id)
}

func (s *Store) GetSiteBySlug(ctx context.Context, slug string) (*db.Site, error) {
	return s.getSite(ctx, "string_id = ?", slug)
}

func (s *Store) getSite(ctx context.Context, where string, arg any) (*db.Site, error) {
	var st db.Site
	query := "SELECT id, site_name, string_id, user_id, created_at, updated_at FROM sites WHERE " + where
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&st.ID, &st.SiteName, &st.StringID, &st.UserID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("query site failed: %v", err)
	}
	return &st, nil
}

func (s *Store) ListSitesByOwner(ctx context.Context, userID uint64) ([]db.Site, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, site_name, string_id, user_id, created_at, updated_at FROM sites WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("query sites failed: %v", err)
	}
	defer rows.Close()

	var sites []db.Site
	for rows.Next() {
		var st db.Site
		if err := rows.Scan(&st.ID, &st.SiteName, &st.StringID, &st.UserID, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site failed: %v", err)
		}
		sites = append(sites, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sites failed: %v", err)
	}
	return sites, nil
}

func (s *Store) UpdateSite(ctx context.Context, site db.Site) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE sites SET site_name = ?, string_id = ?, updated_at = ? WHERE id = ?",
		site.SiteName, site.StringID, site.UpdatedAt, site.ID)
	if err != nil {
		return fmt.Errorf("update site failed: %v", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteSite(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete site failed: %v", err)
	}
	return requireAffected(res)
}

func (s *Store) InsertCategory(ctx context.Context, category db.Category) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories(site_id, name) VALUES (?,?)", category.SiteID, category.Name)
	if err != nil {
		return 0, fmt.Errorf("insert category failed: %v", err)
	}
	return lastInsertID(res)
}

func (s *Store) InsertProduct(ctx context.Context, product db.Product) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO products(category_id, name, description, price) VALUES (?,?,?,?)",
		product.CategoryID, product.Name, product.Description, product.Price)
	if err != nil {
		return 0, fmt.Errorf("insert product failed: %v", err)
	}
	return lastInsertID(res)
}

func (s *Store) InsertVariant(ctx context.Context, variant db.Variant) (uint64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO variants(product_id, name, stock) VALUES (?,?,?)",
		variant.ProductID, variant.Name, variant.Stock)
	if err != nil {
		return 0, fmt.Errorf("insert variant failed: %v", err)
	}
	return lastInsertID(res)
}

func (s *Store) GetCatalogue(ctx context.Context, siteID uint64) ([]db.Category, []db.Product, []db.Variant, error) {
	var categories []db.Category
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, site_id, name FROM categories WHERE site_id = ? ORDER BY id", siteID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query categories failed: %v", err)
	}
	for rows.Next() {
		var c db.Category
		if err := rows.Scan(&c.ID, &c.SiteID, &c.Name); err != nil {
			rows.Close()
			return nil, nil, nil, fmt.Errorf("scan category failed: %v", err)
		}
		categories = append(categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("read categories failed: %v", err)
	}

	var products []db.Product
	rows, err = s.db.QueryContext(ctx, `SELECT p.id, p.category_id, p.name, p.description, p.price
		FROM products p JOIN categories c ON p.category_id = c.id
		WHERE c.site_id = ? ORDER BY p.id`, siteID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query products failed: %v", err)
	}
	for rows.Next() {
		var p db.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price); err != nil {
			rows.Close()
			return nil, nil, nil, fmt.Errorf("scan product failed: %v", err)
		}
		products = append(products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("read products failed: %v", err)
	}

	var variants []db.Variant
	rows, err = s.db.QueryContext(ctx, `SELECT v.id, v.product_id, v.name, v.stock
		FROM variants v
		JOIN products p ON v.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE c.site_id = ? ORDER BY v.id`, siteID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query variants failed: %v", err)
	}
	for rows.Next() {
		var v db.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Stock); err != nil {
			rows.Close()
			return nil, nil, nil, fmt.Errorf("scan variant failed: %v", err)
		}
		variants = append(variants, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("read variants failed: %v", err)
	}

	return categories, products, variants, nil
}

func (s *Store) DeleteCatalogue(ctx context.Context, siteID uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete catalogue failed: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE product_id IN (
		SELECT p.id FROM products p JOIN categories c ON p.category_id = c.id WHERE c.site_id = ?)`, siteID); err != nil {
		return fmt.Errorf("delete variants failed: %v", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE category_id IN (
		SELECT id FROM categories WHERE site_id = ?)`, siteID); err != nil {
		return fmt.Errorf("delete products failed: %v", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE site_id = ?", siteID); err != nil {
		return fmt.Errorf("delete categories failed: %v", err)
	}
	return tx.Commit()
}

func lastInsertID(res sql.Result) (uint64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id failed: %v", err)
	}
	return uint64(id), nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %v", err)
	}
	if affected == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
