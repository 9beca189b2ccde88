package payment

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"hridhayam-client/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultGrace = 30 * time.Second

// LoopbackWidget runs the provider's checkout script in the user's browser. It serves a one-off
// page on a loopback listener and waits for the script to post back how the payment ended.
type LoopbackWidget struct {
	addr     string
	grace    time.Duration
	announce func(url string)
}

type LoopbackOption func(*LoopbackWidget)

// WithGrace sets how long past the provider timeout the widget keeps waiting for a callback.
func WithGrace(d time.Duration) LoopbackOption {
	return func(w *LoopbackWidget) {
		w.grace = d
	}
}

// NewLoopbackWidget listens on addr (use port 0 for any free port). announce is called with the
// page URL the user has to open.
func NewLoopbackWidget(addr string, announce func(url string), opts ...LoopbackOption) *LoopbackWidget {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	w := &LoopbackWidget{addr: addr, grace: defaultGrace, announce: announce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ Widget = (*LoopbackWidget)(nil)

// Open blocks until the checkout script reports back, the provider timeout plus grace elapses
// (TimedOut) or ctx is cancelled (Dismissed with ctx.Err()).
func (w *LoopbackWidget) Open(ctx context.Context, opts WidgetOptions) (Result, error) {
	log := logger.FromCtx(ctx).With(zap.String("razorpay_order_id", opts.OrderID))

	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return Result{}, fmt.Errorf("listen for payment callback: %w", err)
	}

	h := newCallbackHandler(uuid.NewString(), opts)
	srv := &http.Server{
		Handler:           h.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("payment callback listener did not stop cleanly", zap.Error(err))
		}
	}()

	if w.announce != nil {
		w.announce(fmt.Sprintf("http://%s/pay/%s/", ln.Addr(), h.token))
	}
	log.Info("payment widget opened",
		zap.String("listen_addr", ln.Addr().String()),
		zap.Int("timeout_seconds", opts.Timeout),
	)

	timer := time.NewTimer(opts.TimeoutDuration() + w.grace)
	defer timer.Stop()

	select {
	case res := <-h.results:
		return res, nil
	case <-timer.C:
		log.Warn("no payment callback before timeout")
		return Result{Disposition: TimedOut}, nil
	case err := <-serveErr:
		return Result{}, fmt.Errorf("payment callback listener: %w", err)
	case <-ctx.Done():
		log.Info("payment widget abandoned", zap.Error(ctx.Err()))
		return Result{Disposition: Dismissed}, ctx.Err()
	}
}
