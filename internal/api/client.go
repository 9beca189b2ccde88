package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/metrics"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenCookie is the session cookie the backend sets on login.
const TokenCookie = "access_token"

var errServerStatus = errors.New("server error status")

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	Metrics   *metrics.API
}

// Client talks JSON to the storefront backend. Calls are never retried; a run of transport
// failures opens the breaker so later calls fail fast instead of hanging.
type Client struct {
	http    *resty.Client
	base    *url.URL
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	metrics *metrics.API
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 20
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewAPI(nil)
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetRateLimiter(rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst))

	rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		reqID := logger.RequestIDFrom(r.Context())
		if reqID == "" {
			reqID = uuid.New().String()
		}
		r.SetHeader("X-Request-ID", reqID)
		return nil
	})

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        "storefront-api",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.L().Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{http: rc, base: base, breaker: breaker, metrics: opts.Metrics}, nil
}

// SetToken restores a persisted session cookie so the backend recognises the user.
func (c *Client) SetToken(token string) {
	if token == "" {
		return
	}
	c.http.GetClient().Jar.SetCookies(c.base, []*http.Cookie{{Name: TokenCookie, Value: token, Path: "/"}})
}

// Token returns the session cookie the backend last set, if any.
func (c *Client) Token() string {
	for _, ck := range c.http.GetClient().Jar.Cookies(c.base) {
		if ck.Name == TokenCookie {
			return ck.Value
		}
	}
	return ""
}

// ClearToken drops every cookie the backend set.
func (c *Client) ClearToken() {
	for _, ck := range c.http.GetClient().Jar.Cookies(c.base) {
		c.http.GetClient().Jar.SetCookies(c.base, []*http.Cookie{{Name: ck.Name, Value: "", Path: "/", MaxAge: -1}})
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodDelete, path, body, out)
}

// Do sends a JSON request and decodes the reply into out (which may be nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return c.send(ctx, req, method, path, out)
}

// Multipart sends form fields plus an optional file under fileField.
func (c *Client) Multipart(ctx context.Context, method, path string, fields map[string]string, fileField, filePath string, out any) error {
	req := c.http.R().SetContext(ctx).SetMultipartFormData(fields)
	if filePath != "" {
		req.SetFile(fileField, filePath)
	}
	return c.send(ctx, req, method, path, out)
}

func (c *Client) send(ctx context.Context, req *resty.Request, method, path string, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)
	start := time.Now()

	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		resp, err := req.Execute(method, path)
		if err != nil {
			return resp, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		c.metrics.Requests.WithLabelValues(path, "transport_error").Inc()
		log.Warn("backend request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}

	log = log.With(zap.Int("status", resp.StatusCode()), zap.Duration("duration", time.Since(start)))

	if err := decode(resp, out); err != nil {
		var be *BusinessError
		if errors.As(err, &be) {
			c.metrics.Requests.WithLabelValues(path, "business_error").Inc()
			log.Info("backend rejected request", zap.String("message", be.Message))
		} else {
			c.metrics.Requests.WithLabelValues(path, "transport_error").Inc()
			log.Warn("backend reply unusable", zap.Error(err))
		}
		return err
	}

	c.metrics.Requests.WithLabelValues(path, "ok").Inc()
	log.Debug("backend request completed")
	return nil
}

func decode(resp *resty.Response, out any) error {
	body := resp.Body()
	message := gjson.GetBytes(body, "message").String()

	if resp.IsError() {
		if message != "" {
			return &BusinessError{Status: resp.StatusCode(), Message: message}
		}
		return fmt.Errorf("%w: %s returned %d", ErrTransport, resp.Request.URL, resp.StatusCode())
	}

	if ok := gjson.GetBytes(body, "success"); ok.Exists() && !ok.Bool() {
		if message == "" {
			message = "request was not successful"
		}
		return &BusinessError{Status: resp.StatusCode(), Message: message}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}
