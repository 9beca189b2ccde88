package product

import (
	"math"
	"strconv"
	"strings"

	"hridhayam-client/internal/utils"
)

// PageSize is how many products a catalog page shows.
const PageSize = 9

const defaultMaxPrice = 1000

// Filter narrows a product list. Zero-valued facets match everything.
type Filter struct {
	PriceMin   float64
	PriceMax   float64 // 0 means no upper bound
	Status     []StockStatus
	Categories []string
	Search     string
}

func (f Filter) Match(p Product) bool {
	if p.Price < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && p.Price > f.PriceMax {
		return false
	}
	if !f.matchStatus(p) {
		return false
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
		return false
	}
	return f.matchSearch(p)
}

func (f Filter) matchStatus(p Product) bool {
	var inStock, preOrder bool
	for _, s := range f.Status {
		switch s {
		case StatusInStock:
			inStock = true
		case StatusPreOrder:
			preOrder = true
		}
	}
	if inStock == preOrder {
		return true
	}
	return inStock == p.InStock
}

func (f Filter) matchSearch(p Product) bool {
	q := strings.TrimSpace(f.Search)
	if q == "" {
		return true
	}
	return utils.ContainsFold(p.Name, q) ||
		utils.ContainsFold(p.Description, q) ||
		strings.Contains(strconv.FormatFloat(p.Price, 'f', -1, 64), q)
}

func (f Filter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// MaxPrice is the highest price in the list, or 1000 for an empty list.
func MaxPrice(products []Product) float64 {
	max := 0.0
	for _, p := range products {
		max = math.Max(max, p.Price)
	}
	if max == 0 {
		return defaultMaxPrice
	}
	return max
}

// Categories returns the distinct category names in first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Paginate returns one page of products and the total number of pages.
func Paginate(products []Product, page, perPage int) ([]Product, int) {
	return utils.Paginate(products, page, perPage)
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
