package db

import "time"

type User struct {
	ID        uint64    `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}

type Site struct {
	ID        uint64    `db:"id"`
	SiteName  string    `db:"site_name"`
	StringID  string    `db:"string_id"`
	UserID    uint64    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at,omitempty"`
}

type Category struct {
	ID     uint64 `db:"id"`
	SiteID uint64 `db:"site_id"`
	Name   string `db:"name"`
}

type Product struct {
	ID          uint64  `db:"id"`
	CategoryID  uint64  `db:"category_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
}

type Variant struct {
	ID        uint64 `db:"id"`
	ProductID uint64 `db:"product_id"`
	Name      string `db:"name"`
	Stock     int    `db:"stock"`
}
