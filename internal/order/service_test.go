package order

import (
	"context"
	"testing"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/api/apitest"
	"hridhayam-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	customer = &session.Session{UserID: "u1", Role: session.RoleUser}
	admin    = &session.Session{UserID: "a1", Role: session.RoleAdmin}
)

func TestService_Create(t *testing.T) {
	draft := Draft{
		ShippingAddress: "12 MG Road, Kochi, Kerala - 682001",
		ContactPhone:    "9876543210",
		PaymentMethod:   MethodCOD,
		TotalAmount:     4000,
		PaidAmount:      0,
		BalanceDue:      3000,
	}

	t.Run("Success stamps user id", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		want := draft
		want.UserID = "u1"
		backend.On("Post", mock.Anything, "/order/create", want).Return(`{"orderId":"o-123"}`, nil)

		id, err := svc.Create(context.Background(), customer, draft)

		require.NoError(t, err)
		assert.Equal(t, "o-123", id)
		backend.AssertExpectations(t)
	})

	t.Run("Missing order id", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		backend.On("Post", mock.Anything, "/order/create", mock.Anything).Return(`{"message":"Stock changed"}`, nil)

		_, err := svc.Create(context.Background(), customer, draft)

		assert.ErrorIs(t, err, ErrOrderRejected)
		assert.Equal(t, "Stock changed", api.Message(err, ""))
	})

	t.Run("Backend rejects", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		backend.On("Post", mock.Anything, "/order/create", mock.Anything).
			Return("", &api.BusinessError{Status: 400, Message: "Cart is empty"})

		_, err := svc.Create(context.Background(), customer, draft)

		assert.ErrorIs(t, err, ErrOrderRejected)
		assert.Equal(t, "Cart is empty", api.Message(err, ""))
	})
}

func TestService_Mine(t *testing.T) {
	backend := new(apitest.MockBackend)
	svc := NewService(backend)

	backend.On("Post", mock.Anything, "/order/user", map[string]string{"userId": "u1"}).Return(`{"success":true,"data":[
		{"_id":"665f1c2ab9e3d4a1c0ffee01","userId":"u1","status":"pending","paymentStatus":"Paid","totalAmount":4000,
		 "items":[{"productId":{"_id":"p1","name":"Haram","image":["a.jpg","b.jpg"]},"quantity":1,"price":2000}]}
	]}`, nil)

	orders, err := svc.Mine(context.Background(), customer)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "u1", orders[0].Customer.ID)
	assert.Equal(t, "a.jpg", orders[0].Items[0].Product.Images.First())
	assert.Equal(t, "c0ffee01", ShortID(orders[0].ID))
}

func TestService_Details(t *testing.T) {
	t.Run("Populated customer", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		backend.On("Get", mock.Anything, "/order/o1").Return(`{"success":true,"data":{
			"_id":"o1","userId":{"_id":"u1","name":"Anu","email":"anu@example.com"},
			"status":"shipped","trackingNumber":"TRK1","balanceAmount":1000,
			"items":[{"productId":{"_id":"p1","name":"Ring","image":"r.jpg"},"quantity":2,"price":750}]
		}}`, nil)

		o, err := svc.Details(context.Background(), customer, "o1")

		require.NoError(t, err)
		assert.Equal(t, "anu@example.com", o.Customer.Email)
		assert.Equal(t, float64(1000), o.BalanceDue)
		assert.Equal(t, "r.jpg", o.Items[0].Product.Images.First())
		assert.Equal(t, float64(1500), o.Items[0].Total())
	})

	t.Run("Not found", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		backend.On("Get", mock.Anything, "/order/zz").Return("", &api.BusinessError{Status: 404, Message: "Order not found"})

		_, err := svc.Details(context.Background(), customer, "zz")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_AdminList(t *testing.T) {
	backend := new(apitest.MockBackend)
	svc := NewService(backend)

	_, err := svc.AdminList(context.Background(), customer)
	assert.ErrorIs(t, err, session.ErrNotAdmin)

	backend.On("Get", mock.Anything, "/admin/orders").Return(`{"success":true,"data":[{"_id":"o1"},{"_id":"o2"}]}`, nil)

	orders, err := svc.AdminList(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestService_AdminUpdate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		backend.On("Put", mock.Anything, "/admin/order/status/o1", statusUpdate{Status: StatusShipped, TrackingNumber: "TRK9"}).
			Return(`{"success":true}`, nil)

		require.NoError(t, svc.AdminUpdate(context.Background(), admin, "o1", StatusShipped, " TRK9 "))
		backend.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		assert.ErrorIs(t, svc.AdminUpdate(context.Background(), admin, "o1", "lost", ""), ErrInvalidStatus)
		assert.ErrorIs(t, svc.AdminUpdate(context.Background(), admin, "", StatusShipped, ""), ErrMissingOrderID)
		assert.ErrorIs(t, svc.AdminUpdate(context.Background(), customer, "o1", StatusShipped, ""), session.ErrNotAdmin)
		backend.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success false", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		svc := NewService(backend)

		backend.On("Put", mock.Anything, "/admin/order/status/o1", mock.Anything).
			Return("", &api.BusinessError{Status: 200, Message: "request was not successful"})

		assert.Error(t, svc.AdminUpdate(context.Background(), admin, "o1", StatusDelivered, ""))
	})
}
