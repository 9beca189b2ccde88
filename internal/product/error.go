package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")

	ErrNameRequired        = errors.New("product name is required")
	ErrCategoryRequired    = errors.New("product category is required")
	ErrDescriptionRequired = errors.New("product description is required")
	ErrInvalidPrice        = errors.New("product price must be greater than zero")
	ErrInvalidQuantity     = errors.New("product quantity must be greater than zero")
	ErrInvalidDiscount     = errors.New("discount percentage must be between 0 and 100")
	ErrImageRequired       = errors.New("product image is required")
)
