package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type opened struct {
	res Result
	err error
}

// openWidget starts Open in the background and returns the announced page URL.
func openWidget(t *testing.T, ctx context.Context, opts WidgetOptions, grace time.Duration) (string, <-chan opened) {
	t.Helper()

	urls := make(chan string, 1)
	w := NewLoopbackWidget("127.0.0.1:0", func(u string) { urls <- u }, WithGrace(grace))

	done := make(chan opened, 1)
	go func() {
		res, err := w.Open(ctx, opts)
		done <- opened{res, err}
	}()

	select {
	case u := <-urls:
		return u, done
	case <-time.After(5 * time.Second):
		t.Fatal("widget never announced its url")
		return "", nil
	}
}

func post(t *testing.T, url, body string) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func wait(t *testing.T, done <-chan opened) opened {
	t.Helper()
	select {
	case o := <-done:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("widget did not return")
		return opened{}
	}
}

var testOptions = NewWidgetOptions("rzp_test_key", "Hridhayam", Session{ID: "order_Abc", Amount: 300000, Currency: "INR"},
	Prefill{Name: "Anu", Email: "anu@example.com", Contact: "9876543210"}, DefaultTimeout)

func TestNewWidgetOptions(t *testing.T) {
	assert.Equal(t, 300, testOptions.Timeout)
	assert.False(t, testOptions.Retry.Enabled)
	assert.Equal(t, "order_Abc", testOptions.OrderID)
	assert.Equal(t, int64(300000), testOptions.Amount)
	assert.Equal(t, "9876543210", testOptions.Prefill.Contact)
	assert.Equal(t, DefaultTimeout, testOptions.TimeoutDuration())
}

func TestLoopbackWidget_Page(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	url, done := openWidget(t, ctx, testOptions, time.Minute)

	resp, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "checkout.razorpay.com/v1/checkout.js")
	assert.Contains(t, string(body), `"order_id":"order_Abc"`)
	assert.Contains(t, string(body), `"retry":{"enabled":false}`)

	cancel()
	o := wait(t, done)
	assert.Equal(t, Dismissed, o.res.Disposition)
	assert.ErrorIs(t, o.err, context.Canceled)
}

func TestLoopbackWidget_Success(t *testing.T) {
	url, done := openWidget(t, context.Background(), testOptions, time.Minute)

	status := post(t, url+"success", `{"razorpay_order_id":"order_Abc","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}`)
	assert.Equal(t, http.StatusOK, status)

	o := wait(t, done)
	require.NoError(t, o.err)
	assert.Equal(t, Success, o.res.Disposition)
	assert.Equal(t, Confirmation{OrderID: "order_Abc", PaymentID: "pay_1", Signature: "sig"}, o.res.Confirmation)
	assert.NoError(t, o.res.Err())
}

func TestLoopbackWidget_Dispositions(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		want   Disposition
		reason string
		err    error
	}{
		{"Dismiss without reason", "dismiss", `{"reason":null}`, Dismissed, "", ErrDismissed},
		{"Dismiss with empty body", "dismiss", ``, Dismissed, "", ErrDismissed},
		{"Dismiss on timeout", "dismiss", `{"reason":"timeout"}`, TimedOut, "", ErrTimedOut},
		{"Dismiss with error", "dismiss", `{"reason":{"error":{"description":"Card declined"}}}`, Failed, "Card declined", ErrPaymentFailed},
		{"Payment failed", "failed", `{"error":{"code":"BAD_REQUEST_ERROR","description":"Bank timeout"}}`, Failed, "Bank timeout", ErrPaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, done := openWidget(t, context.Background(), testOptions, time.Minute)

			assert.Equal(t, http.StatusOK, post(t, url+tt.path, tt.body))

			o := wait(t, done)
			require.NoError(t, o.err)
			assert.Equal(t, tt.want, o.res.Disposition)
			assert.Equal(t, tt.reason, o.res.FailureReason)
			assert.ErrorIs(t, o.res.Err(), tt.err)
		})
	}
}

func TestLoopbackWidget_RejectsBadCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	url, done := openWidget(t, ctx, testOptions, time.Minute)

	t.Run("Wrong token", func(t *testing.T) {
		bad := strings.Replace(url, "/pay/", "/pay/x", 1)
		assert.Equal(t, http.StatusNotFound, post(t, bad+"dismiss", `{}`))
	})

	t.Run("Incomplete confirmation", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(t, url+"success", `{"razorpay_order_id":"order_Abc"}`))
	})

	cancel()
	o := wait(t, done)
	assert.Equal(t, Dismissed, o.res.Disposition)
}

func TestCallbackHandler_FirstReportWins(t *testing.T) {
	h := newCallbackHandler("tok", testOptions)
	srv := httptest.NewServer(h.routes())
	defer srv.Close()

	assert.Equal(t, http.StatusOK, post(t, srv.URL+"/pay/tok/failed", `{"error":{"description":"declined"}}`))
	assert.Equal(t, http.StatusConflict, post(t, srv.URL+"/pay/tok/dismiss", `{}`))
	assert.Equal(t, http.StatusConflict, post(t, srv.URL+"/pay/tok/success",
		`{"razorpay_order_id":"o","razorpay_payment_id":"p","razorpay_signature":"s"}`))

	res := <-h.results
	assert.Equal(t, Failed, res.Disposition)
	assert.Equal(t, "declined", res.FailureReason)
}

func TestLoopbackWidget_TimesOut(t *testing.T) {
	opts := testOptions
	opts.Timeout = 1

	_, done := openWidget(t, context.Background(), opts, 10*time.Millisecond)

	o := wait(t, done)
	require.NoError(t, o.err)
	assert.Equal(t, TimedOut, o.res.Disposition)
}
