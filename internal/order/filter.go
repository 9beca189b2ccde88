package order

import (
	"strings"

	"hridhayam-client/internal/utils"
)

// PageSize is how many orders the admin table shows per page.
const PageSize = 10

const filterAll = "all"

// Filter narrows an order list. Empty or "all" facets match everything.
type Filter struct {
	Search         string
	PaymentStatus  string
	DeliveryStatus string
}

func (f Filter) Match(o Order) bool {
	if !facet(f.PaymentStatus, o.PaymentStatus) || !facet(f.DeliveryStatus, string(o.Status)) {
		return false
	}

	q := strings.TrimSpace(f.Search)
	if q == "" {
		return true
	}
	for _, field := range []string{o.ID, o.Customer.Email, string(o.Status), o.PaymentStatus, o.TrackingNumber} {
		if field != "" && utils.ContainsFold(field, q) {
			return true
		}
	}
	return false
}

func facet(want, got string) bool {
	return want == "" || want == filterAll || want == got
}

func (f Filter) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

func Paginate(orders []Order, page, perPage int) ([]Order, int) {
	return utils.Paginate(orders, page, perPage)
}

// ShortID is the trailing part of an order id shown in order history.
func ShortID(id string) string {
	return utils.ShortID(id)
}
