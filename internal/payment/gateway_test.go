package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/api/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBackendGateway_CreateSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/payment", map[string]int64{"payAmount": 3000}).
			Return(`{"success":true,"data":{"id":"order_Abc","amount":300000,"currency":"INR"}}`, nil)

		sess, err := gw.CreateSession(context.Background(), 3000)

		require.NoError(t, err)
		assert.Equal(t, &Session{ID: "order_Abc", Amount: 300000, Currency: "INR"}, sess)
	})

	t.Run("Backend refuses", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/payment", mock.Anything).
			Return("", &api.BusinessError{Status: 200, Message: "Amount too low"})

		_, err := gw.CreateSession(context.Background(), 1)

		assert.ErrorIs(t, err, ErrSessionUnavailable)
		assert.Equal(t, "Amount too low", api.Message(err, ""))
	})

	t.Run("No session id", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/payment", mock.Anything).Return(`{"success":true,"data":{}}`, nil)

		_, err := gw.CreateSession(context.Background(), 10)
		assert.ErrorIs(t, err, ErrSessionUnavailable)
	})
}

func TestBackendGateway_Verify(t *testing.T) {
	conf := Confirmation{OrderID: "order_Abc", PaymentID: "pay_1", Signature: "sig"}

	t.Run("Verified", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/verifyPayment", conf).Return(`{"success":true}`, nil)

		ok, err := gw.Verify(context.Background(), conf)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Signature rejected", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/verifyPayment", conf).
			Return("", &api.BusinessError{Status: 200, Message: "request was not successful"})

		ok, err := gw.Verify(context.Background(), conf)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success false", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/verifyPayment", conf).Return(`{"success":false}`, nil)

		ok, err := gw.Verify(context.Background(), conf)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Missing success field", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/verifyPayment", conf).Return(`{"verified":true}`, nil)

		ok, err := gw.Verify(context.Background(), conf)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Empty body", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/verifyPayment", conf).Return("", nil)

		ok, err := gw.Verify(context.Background(), conf)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Transport failure", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		backend.On("Post", mock.Anything, "/order/verifyPayment", conf).Return("", api.ErrTransport)

		ok, err := gw.Verify(context.Background(), conf)
		assert.ErrorIs(t, err, api.ErrTransport)
		assert.False(t, ok)
	})

	t.Run("Incomplete confirmation", func(t *testing.T) {
		backend := new(apitest.MockBackend)
		gw := NewBackendGateway(backend)

		ok, err := gw.Verify(context.Background(), Confirmation{OrderID: "order_Abc"})
		require.NoError(t, err)
		assert.False(t, ok)
		backend.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBackendGateway_Verify_OverHTTP(t *testing.T) {
	conf := Confirmation{OrderID: "order_Abc", PaymentID: "pay_1", Signature: "sig"}

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"Success true", `{"success":true,"message":"Payment verified"}`, true},
		{"Success false", `{"success":false,"message":"Invalid signature"}`, false},
		{"Empty object", `{}`, false},
		{"Other flag", `{"verified":false}`, false},
		{"Empty body", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/order/verifyPayment", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client, err := api.NewClient(api.Options{BaseURL: srv.URL, RateLimit: 100, RateBurst: 100})
			require.NoError(t, err)

			ok, err := NewBackendGateway(client).Verify(context.Background(), conf)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
