package product

import "time"

type Product struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	Price              float64   `json:"price"`
	Category           string    `json:"category"`
	Description        string    `json:"description,omitempty"`
	Image              string    `json:"image,omitempty"`
	DiscountPercentage float64   `json:"discountPercentage,omitempty"`
	Quantity           int       `json:"quantity,omitempty"`
	InStock            bool      `json:"inStock"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
}

type Category struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ProductInput is the admin form for adding (empty ID) or updating a product.
type ProductInput struct {
	ID                 string
	Name               string
	Price              float64
	Category           string
	Description        string
	DiscountPercentage float64
	HasDiscount        bool
	Quantity           int
	InStock            bool
	ImagePath          string // local file to upload
	ExistingImage      string // keep the current image when no file is given
}

type StockStatus string

const (
	StatusInStock  StockStatus = "instock"
	StatusPreOrder StockStatus = "preorder"
)
