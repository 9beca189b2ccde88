package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/session"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, sess *session.Session, draft Draft) (string, error)
	Mine(ctx context.Context, sess *session.Session) ([]Order, error)
	Details(ctx context.Context, sess *session.Session, orderID string) (*Order, error)
	AdminList(ctx context.Context, sess *session.Session) ([]Order, error)
	AdminUpdate(ctx context.Context, sess *session.Session, orderID string, status OrderStatus, trackingNumber string) error
}

type service struct {
	backend api.Backend
	now     func() time.Time
}

func NewService(backend api.Backend) Service {
	return &service{backend: backend, now: time.Now}
}

// Create submits a draft and returns the new order id. A reply without an order id counts as a
// rejection.
func (s *service) Create(ctx context.Context, sess *session.Session, draft Draft) (string, error) {
	if err := sess.Require(s.now()); err != nil {
		return "", err
	}
	draft.UserID = sess.UserID

	log := logger.FromCtx(ctx).With(
		zap.String("user_id", draft.UserID),
		zap.String("payment_method", string(draft.PaymentMethod)),
		zap.Int64("total_amount", draft.TotalAmount),
		zap.Int64("paid_amount", draft.PaidAmount),
	)

	var resp createResponse
	if err := s.backend.Post(ctx, "/order/create", draft, &resp); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrOrderRejected, err)
	}
	if resp.OrderID == "" {
		log.Error("order create reply carried no order id", zap.String("message", resp.Message))
		if resp.Message != "" {
			return "", fmt.Errorf("%w: %w", ErrOrderRejected, &api.BusinessError{Status: http.StatusOK, Message: resp.Message})
		}
		return "", ErrOrderRejected
	}

	log.Info("order created", zap.String("order_id", resp.OrderID))
	return resp.OrderID, nil
}

func (s *service) Mine(ctx context.Context, sess *session.Session) ([]Order, error) {
	if err := sess.Require(s.now()); err != nil {
		return nil, err
	}

	var env api.Envelope[[]Order]
	if err := s.backend.Post(ctx, "/order/user", map[string]string{"userId": sess.UserID}, &env); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return env.Data, nil
}

func (s *service) Details(ctx context.Context, sess *session.Session, orderID string) (*Order, error) {
	if err := sess.Require(s.now()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrMissingOrderID
	}

	var env api.Envelope[*Order]
	err := s.backend.Get(ctx, "/order/"+url.PathEscape(orderID), &env)
	var be *api.BusinessError
	if errors.As(err, &be) && be.Status == http.StatusNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	if env.Data == nil {
		return nil, ErrOrderNotFound
	}
	return env.Data, nil
}

func (s *service) AdminList(ctx context.Context, sess *session.Session) ([]Order, error) {
	if err := sess.RequireAdmin(s.now()); err != nil {
		return nil, err
	}

	var env api.Envelope[[]Order]
	if err := s.backend.Get(ctx, "/admin/orders", &env); err != nil {
		return nil, fmt.Errorf("fetch all orders: %w", err)
	}
	return env.Data, nil
}

func (s *service) AdminUpdate(ctx context.Context, sess *session.Session, orderID string, status OrderStatus, trackingNumber string) error {
	if err := sess.RequireAdmin(s.now()); err != nil {
		return err
	}
	if strings.TrimSpace(orderID) == "" {
		return ErrMissingOrderID
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	body := statusUpdate{Status: status, TrackingNumber: strings.TrimSpace(trackingNumber)}
	if err := s.backend.Put(ctx, "/admin/order/status/"+url.PathEscape(orderID), body, nil); err != nil {
		log.Error("failed to update order", zap.Error(err))
		return fmt.Errorf("update order: %w", err)
	}

	log.Info("order updated")
	return nil
}
