package product

import "math"

// DiscountedPrice is the listed price; the backend stores prices after discount.
func DiscountedPrice(p Product) int64 {
	return int64(math.Round(p.Price))
}

// OriginalPrice reverses the discount for the struck-through display price.
func OriginalPrice(p Product) int64 {
	if p.DiscountPercentage <= 0 || p.DiscountPercentage >= 100 {
		return DiscountedPrice(p)
	}
	return int64(math.Round(p.Price / (1 - p.DiscountPercentage/100)))
}

// PreOrderPartial is the upfront share of a pre-order: half the line value, rounded.
func PreOrderPartial(price float64, quantity int) int64 {
	if quantity < 1 {
		quantity = 1
	}
	return int64(math.Round(math.Round(price) * float64(quantity) / 2))
}
