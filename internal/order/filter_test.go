package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var history = []Order{
	{ID: "aaaa1111", Status: StatusPending, PaymentStatus: PaymentPaid},
	{ID: "bbbb2222", Status: StatusShipped, PaymentStatus: PaymentCOD, TrackingNumber: "DTDC-55"},
	{ID: "cccc3333", Status: StatusDelivered, PaymentStatus: PaymentPaid, Customer: Customer{Email: "meera@example.com"}},
}

func orderIDs(orders []Order) []string {
	var out []string
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"All", Filter{PaymentStatus: "all", DeliveryStatus: "all"}, []string{"aaaa1111", "bbbb2222", "cccc3333"}},
		{"Payment facet", Filter{PaymentStatus: PaymentPaid}, []string{"aaaa1111", "cccc3333"}},
		{"Delivery facet", Filter{DeliveryStatus: "shipped"}, []string{"bbbb2222"}},
		{"Search id", Filter{Search: "CCCC"}, []string{"cccc3333"}},
		{"Search spans statuses", Filter{Search: "deliv"}, []string{"bbbb2222", "cccc3333"}},
		{"Search payment status", Filter{Search: "cash"}, []string{"bbbb2222"}},
		{"Search tracking", Filter{Search: "dtdc"}, []string{"bbbb2222"}},
		{"Search email", Filter{Search: "meera"}, []string{"cccc3333"}},
		{"No match", Filter{Search: "zzz"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderIDs(tt.filter.Apply(history)))
		})
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("PENDING").Valid())
}

func TestPaginate(t *testing.T) {
	page, total := Paginate(history, 1, PageSize)
	assert.Len(t, page, 3)
	assert.Equal(t, 1, total)
}
