package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"hridhayam-client/internal/config"
	"hridhayam-client/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		APIBaseURL:   baseURL,
		AppEnv:       "test",
		MerchantName: "Hridhayam",
		SessionFile:  filepath.Join(t.TempDir(), "session.json"),
		CallbackAddr: "127.0.0.1:0",
		APIRateLimit: 100,
		APIRateBurst: 100,
	}
}

func signIn(t *testing.T, cfg *config.Config) {
	t.Helper()
	require.NoError(t, session.NewStore(cfg.SessionFile).Save(&session.Session{UserID: "u1", Role: session.RoleUser, Name: "Anu"}))
}

func TestRun_Usage(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	t.Run("No command", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 2, run(context.Background(), cfg, nil, io.Discard, &stderr))
		assert.Contains(t, stderr.String(), "checkout")
	})

	t.Run("Unknown command", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 2, run(context.Background(), cfg, []string{"wishlist"}, io.Discard, &stderr))
		assert.Contains(t, stderr.String(), `unknown command "wishlist"`)
	})

	t.Run("Missing argument", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 2, run(context.Background(), cfg, []string{"product"}, io.Discard, &stderr))
		assert.Contains(t, stderr.String(), "usage: storefront product <product-id>")
	})

	t.Run("Requires login", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 1, run(context.Background(), cfg, []string{"cart"}, io.Discard, &stderr))
		assert.Contains(t, stderr.String(), "please log in first")
	})
}

func TestRun_Categories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/category", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":[{"name":"Necklaces"},{"name":"Temple Jewellery"}]}`)
	}))
	defer srv.Close()

	var stdout bytes.Buffer
	code := run(context.Background(), testConfig(t, srv.URL), []string{"categories"}, &stdout, io.Discard)

	assert.Equal(t, 0, code)
	assert.Equal(t, "Necklaces\nTemple Jewellery\n", stdout.String())
}

func TestRun_CheckoutCOD(t *testing.T) {
	var created map[string]any
	mux := chi.NewRouter()
	mux.Post("/cart/show", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"_id":"c1","productId":{"_id":"p1","name":"Jhumka","price":1000,"inStock":true},"quantity":2,"isPreOrder":false},
			{"_id":"c2","productId":{"_id":"p2","name":"Haram","price":2000},"quantity":1,"isPreOrder":true,"partialPayment":1000},
			{"_id":"c3","productId":null,"quantity":1}
		]}`)
	})
	mux.Post("/user", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"user":{"id":"u1","name":"Anu","email":"anu@example.com","phone":"98765 43210"}}`)
	})
	mux.Post("/order/create", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		_, _ = io.WriteString(w, `{"orderId":"665f1c2ab7e4d90012345678","message":"Order created"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	signIn(t, cfg)
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), cfg, []string{
		"-metrics-file", metricsFile,
		"checkout", "-method", "cod", "-street", "12 MG Road", "-city", "Kochi", "-state", "Kerala", "-zip", "682001",
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "u1", created["userId"])
	assert.Equal(t, "cod", created["paymentMethod"])
	assert.Equal(t, "9876543210", created["contactPhone"])
	assert.Equal(t, "12 MG Road, Kochi, Kerala - 682001", created["shippingAddress"])
	assert.Equal(t, float64(0), created["paidAmount"])
	assert.Equal(t, float64(3000), created["balanceDue"])
	assert.Equal(t, float64(4000), created["totalAmount"])
	assert.Nil(t, created["transactionId"])

	assert.Contains(t, stdout.String(), "Order 12345678 placed")
	assert.Contains(t, stdout.String(), "Keep ₹3000 ready in cash")
	assert.Contains(t, stderr.String(), "Order created successfully!")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `method="cod"`)
}

func TestRun_CheckoutEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/show", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	signIn(t, cfg)

	var stdout bytes.Buffer
	code := run(context.Background(), cfg, []string{"checkout", "-method", "cod"}, &stdout, io.Discard)

	assert.Equal(t, 0, code)
	assert.Equal(t, "Your cart is empty\n", stdout.String())
}

func TestOneArg(t *testing.T) {
	fs := flags("qty", &app{errOut: io.Discard})
	n := fs.Int("qty", 1, "")

	id, err := oneArg(fs, []string{"p1", "-qty", "3"})
	require.NoError(t, err)
	assert.Equal(t, "p1", id)
	assert.Equal(t, 3, *n)

	_, err = oneArg(flags("x", &app{errOut: io.Discard}), nil)
	assert.ErrorIs(t, err, errUsage)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Rings", "Temple Jewellery"}, splitList(" Rings, ,Temple Jewellery "))
	assert.Nil(t, splitList(""))
}
