package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/session"

	"go.uber.org/zap"
)

// AdminService manages the catalog. Every call requires an admin session.
type AdminService interface {
	List(ctx context.Context, sess *session.Session) ([]Product, error)
	Save(ctx context.Context, sess *session.Session, in ProductInput) (*Product, error)
	Remove(ctx context.Context, sess *session.Session, productID string) error
}

type adminService struct {
	backend api.Backend
	now     func() time.Time
}

func NewAdminService(backend api.Backend) AdminService {
	return &adminService{backend: backend, now: time.Now}
}

func (s *adminService) List(ctx context.Context, sess *session.Session) ([]Product, error) {
	if err := sess.RequireAdmin(s.now()); err != nil {
		return nil, err
	}

	var env api.Envelope[[]Product]
	if err := s.backend.Post(ctx, "/admin/product", map[string]string{"userId": sess.UserID}, &env); err != nil {
		return nil, fmt.Errorf("fetch admin products: %w", err)
	}
	return env.Data, nil
}

// Save adds the product when in.ID is empty and updates it otherwise.
func (s *adminService) Save(ctx context.Context, sess *session.Session, in ProductInput) (*Product, error) {
	if err := sess.RequireAdmin(s.now()); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("product_id", in.ID),
		zap.String("name", in.Name),
	)

	method, path := http.MethodPost, "/admin/product/add"
	if in.ID != "" {
		method, path = http.MethodPut, "/admin/product/update"
	}

	var saved Product
	if err := s.backend.Multipart(ctx, method, path, in.fields(), "image", in.ImagePath, &saved); err != nil {
		log.Error("failed to save product", zap.Error(err))
		return nil, fmt.Errorf("save product: %w", err)
	}

	log.Info("product saved", zap.String("saved_id", saved.ID))
	return &saved, nil
}

func (s *adminService) Remove(ctx context.Context, sess *session.Session, productID string) error {
	if err := sess.RequireAdmin(s.now()); err != nil {
		return err
	}
	if strings.TrimSpace(productID) == "" {
		return ErrProductNotFound
	}

	if err := s.backend.Delete(ctx, "/admin/product/remove", map[string]string{"id": productID}, nil); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	return nil
}

// Validate mirrors the admin form's rules; every failure is reported together.
func (in ProductInput) Validate() error {
	var errs []error
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if in.Price <= 0 {
		errs = append(errs, ErrInvalidPrice)
	}
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, ErrCategoryRequired)
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	if in.ImagePath == "" && in.ExistingImage == "" {
		errs = append(errs, ErrImageRequired)
	}
	if in.Quantity <= 0 {
		errs = append(errs, ErrInvalidQuantity)
	}
	if in.HasDiscount && (in.DiscountPercentage <= 0 || in.DiscountPercentage >= 100) {
		errs = append(errs, ErrInvalidDiscount)
	}
	return errors.Join(errs...)
}

func (in ProductInput) fields() map[string]string {
	discount := 0.0
	if in.HasDiscount {
		discount = in.DiscountPercentage
	}

	f := map[string]string{
		"name":               strings.TrimSpace(in.Name),
		"price":              strconv.FormatFloat(in.Price, 'f', -1, 64),
		"category":           strings.TrimSpace(in.Category),
		"description":        strings.TrimSpace(in.Description),
		"discountPercentage": strconv.FormatFloat(discount, 'f', -1, 64),
		"quantity":           strconv.Itoa(in.Quantity),
		"inStock":            strconv.FormatBool(in.InStock),
	}
	if in.ID != "" {
		f["id"] = in.ID
	}
	if in.ImagePath == "" && in.ExistingImage != "" {
		f["existingImage"] = in.ExistingImage
	}
	return f
}
