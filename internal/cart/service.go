package cart

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/product"
	"hridhayam-client/internal/session"

	"go.uber.org/zap"
)

// Service defines the cart operations. The cart itself lives on the backend.
type Service interface {
	Show(ctx context.Context, sess *session.Session) ([]LineItem, error)
	Add(ctx context.Context, sess *session.Session, params AddParams) error
	ChangeQuantity(ctx context.Context, sess *session.Session, item LineItem, delta int) error
	Remove(ctx context.Context, sess *session.Session, cartItemID string) error
	Quantity(ctx context.Context, sess *session.Session, productID string) (int, error)
}

type service struct {
	backend api.Backend
	now     func() time.Time
}

// NewService creates a new cart service
func NewService(backend api.Backend) Service {
	return &service{backend: backend, now: time.Now}
}

func (s *service) Show(ctx context.Context, sess *session.Session) ([]LineItem, error) {
	if err := sess.Require(s.now()); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(zap.String("user_id", sess.UserID))

	var env api.Envelope[[]LineItem]
	if err := s.backend.Post(ctx, "/cart/show", map[string]string{"userId": sess.UserID}, &env); err != nil {
		log.Error("failed to get cart", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFailedGetCart, err)
	}

	items := make([]LineItem, 0, len(env.Data))
	for _, item := range env.Data {
		// products removed from the catalog come back as a null reference
		if item.Product.ID == "" {
			log.Warn("skipping cart item without product", zap.String("cart_item_id", item.ID))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, sess *session.Session, params AddParams) error {
	if err := sess.Require(s.now()); err != nil {
		return err
	}
	if strings.TrimSpace(params.ProductID) == "" {
		return ErrMissingProduct
	}
	if params.Quantity < 1 {
		return ErrInvalidQuantity
	}

	req := addRequest{
		UserID:     sess.UserID,
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		IsPreOrder: params.PreOrder,
	}
	if params.PreOrder {
		req.PartialPayment = product.PreOrderPartial(params.Price, params.Quantity)
	}

	return s.add(ctx, req)
}

// ChangeQuantity adds delta (which may be negative) to an existing line. The backend treats the
// add endpoint as an increment, so only the delta is sent.
func (s *service) ChangeQuantity(ctx context.Context, sess *session.Session, item LineItem, delta int) error {
	if err := sess.Require(s.now()); err != nil {
		return err
	}
	if item.Quantity+delta < 1 {
		return ErrInvalidQuantity
	}

	return s.add(ctx, addRequest{
		UserID:         sess.UserID,
		ProductID:      item.Product.ID,
		Quantity:       delta,
		IsPreOrder:     item.IsPreOrder,
		PartialPayment: int64(math.Round(item.PartialPayment)),
	})
}

func (s *service) add(ctx context.Context, req addRequest) error {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", req.UserID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Bool("pre_order", req.IsPreOrder),
	)

	if err := s.backend.Post(ctx, "/cart/add", req, nil); err != nil {
		log.Error("failed to add to cart", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFailedAddToCart, err)
	}

	log.Info("cart updated")
	return nil
}

func (s *service) Remove(ctx context.Context, sess *session.Session, cartItemID string) error {
	if err := sess.Require(s.now()); err != nil {
		return err
	}
	if strings.TrimSpace(cartItemID) == "" {
		return ErrMissingCartItem
	}

	req := removeRequest{CartItemID: cartItemID, UserID: sess.UserID}
	if err := s.backend.Delete(ctx, "/cart/remove", req, nil); err != nil {
		logger.FromCtx(ctx).Error("failed to remove cart item",
			zap.String("cart_item_id", cartItemID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrFailedRemoveCart, err)
	}
	return nil
}

// Quantity reports how many units of productID are already in the cart.
func (s *service) Quantity(ctx context.Context, sess *session.Session, productID string) (int, error) {
	if err := sess.Require(s.now()); err != nil {
		return 0, err
	}
	if strings.TrimSpace(productID) == "" {
		return 0, ErrMissingProduct
	}

	var resp quantityResponse
	if err := s.backend.Post(ctx, "/cart/quantity", quantityRequest{UserID: sess.UserID, ProductID: productID}, &resp); err != nil {
		return 0, fmt.Errorf("fetch cart quantity: %w", err)
	}
	return resp.Quantity, nil
}
