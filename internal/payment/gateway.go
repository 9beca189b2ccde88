package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"

	"go.uber.org/zap"
)

type backendGateway struct {
	backend api.Backend
}

// NewBackendGateway returns a Gateway that goes through the shop backend, which holds the
// provider credentials.
func NewBackendGateway(backend api.Backend) Gateway {
	return &backendGateway{backend: backend}
}

// CreateSession asks the backend for a provider order of exactly amount.
func (g *backendGateway) CreateSession(ctx context.Context, amount int64) (*Session, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("amount", amount))

	var env api.Envelope[*Session]
	if err := g.backend.Post(ctx, "/order/payment", map[string]int64{"payAmount": amount}, &env); err != nil {
		log.Error("failed to create payment session", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
	}
	if env.Data == nil || env.Data.ID == "" {
		log.Error("payment session reply carried no session id")
		return nil, ErrSessionUnavailable
	}

	log.Info("payment session created",
		zap.String("session_id", env.Data.ID),
		zap.String("currency", env.Data.Currency),
	)
	return env.Data, nil
}

// Verify reports whether the backend accepted the confirmation signature. Only a reply with
// success true counts. A rejection is (false, nil); an error means the outcome is unknown.
func (g *backendGateway) Verify(ctx context.Context, conf Confirmation) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("razorpay_order_id", conf.OrderID),
		zap.String("razorpay_payment_id", conf.PaymentID),
	)

	if !conf.Complete() {
		log.Warn("incomplete payment confirmation")
		return false, nil
	}

	var env api.Envelope[json.RawMessage]
	err := g.backend.Post(ctx, "/order/verifyPayment", conf, &env)
	var be *api.BusinessError
	if errors.As(err, &be) {
		log.Warn("payment signature rejected", zap.String("message", be.Message))
		return false, nil
	}
	if err != nil {
		log.Error("payment verification request failed", zap.Error(err))
		return false, fmt.Errorf("verify payment: %w", err)
	}

	if !env.Success {
		log.Warn("payment verification reply without success", zap.String("message", env.Message))
		return false, nil
	}

	log.Info("payment verified")
	return true, nil
}
