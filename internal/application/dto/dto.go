package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CreateSiteRequest struct {
	SiteName string `json:"site_name"`
}

type UpdateSiteRequest struct {
	SiteName string `json:"site_name"`
}

type SiteResponse struct {
	ID        uint64    `json:"id"`
	SiteName  string    `json:"site_name"`
	StringID  string    `json:"string_id"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteConfig is the per-site blob stored in object storage, one document per
// slug. All fields are overwritten on every update.
type SiteConfig struct {
	CSSTemplate string `json:"css_template"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContactText string `json:"contact_text"`
}

type VariantPayload struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type ProductPayload struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Variants    []VariantPayload `json:"variants"`
}

type CategoryPayload struct {
	Name     string           `json:"name"`
	Products []ProductPayload `json:"products"`
}

// CatalogueUpdate replaces a site's whole catalogue, there is no partial merge.
type CatalogueUpdate struct {
	Categories []CategoryPayload `json:"categories"`
}

type VariantResponse struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	ProductID uint64 `json:"product_id"`
}

type ProductResponse struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	CategoryID  uint64            `json:"category_id"`
	Variants    []VariantResponse `json:"variants"`
}

type CategoryResponse struct {
	ID       uint64            `json:"id"`
	Name     string            `json:"name"`
	SiteID   uint64            `json:"site_id"`
	Products []ProductResponse `json:"products"`
}

type CatalogueResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
