package generation

// Category is a product category with the fictional brands selling in it.
type Category struct {
	CategoryID int      `json:"categoryId"`
	Name       string   `json:"name"`
	Brands     []string `json:"brands"`
}

// Product is a catalog entry generated for a category/brand pair.
type Product struct {
	ProductID   int     `json:"productId"`
	CategoryID  int     `json:"categoryId"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
