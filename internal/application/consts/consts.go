package consts

// Catalogue entries bootstrapped for every freshly created site.
const (
	DefaultCategoryName = "Default Category"
	DefaultProductName  = "Default Product"
	DefaultVariantName  = "Default Variant"
)

const TokenType = "bearer"
