package cart

import (
	"hridhayam-client/internal/product"
)

// LineItem is one row of the backend cart. Product is the snapshot the cart was read with.
type LineItem struct {
	ID             string          `json:"_id"`
	Product        product.Product `json:"productId"`
	Quantity       int             `json:"quantity"`
	IsPreOrder     bool            `json:"isPreOrder"`
	PartialPayment float64         `json:"partialPayment,omitempty"`
}

func (i LineItem) UnitPrice() float64 {
	return i.Product.Price
}

func (i LineItem) Total() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

func (i LineItem) Validate() error {
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if i.IsPreOrder && i.PartialPayment > i.Total() {
		return ErrPartialExceedsTotal
	}
	return nil
}

// AddParams describes an add-to-cart request. Price is the discounted unit price used to work out
// the upfront share of a pre-order.
type AddParams struct {
	ProductID string
	Quantity  int
	PreOrder  bool
	Price     float64
}

type addRequest struct {
	UserID         string `json:"userId"`
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	IsPreOrder     bool   `json:"isPreOrder"`
	PartialPayment int64  `json:"partialPayment"`
}

type removeRequest struct {
	CartItemID string `json:"cartItemId"`
	UserID     string `json:"userId"`
}

type quantityRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

type quantityResponse struct {
	Success  bool `json:"success"`
	Quantity int  `json:"quantity"`
}
