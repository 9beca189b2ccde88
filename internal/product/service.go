package product

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"

	"go.uber.org/zap"
)

// Service reads the public catalog.
type Service interface {
	Categories(ctx context.Context) ([]Category, error)
	Discounts(ctx context.Context) ([]Product, error)
	ByCategory(ctx context.Context, categories ...string) ([]Product, error)
	Details(ctx context.Context, productID string) (*Product, error)
}

type service struct {
	backend api.Backend
}

func NewService(backend api.Backend) Service {
	return &service{backend: backend}
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	var env api.Envelope[[]Category]
	if err := s.backend.Get(ctx, "/product/category", &env); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return env.Data, nil
}

// Discounts returns only products that actually carry a discount.
func (s *service) Discounts(ctx context.Context) ([]Product, error) {
	var env api.Envelope[[]Product]
	if err := s.backend.Get(ctx, "/product/discount", &env); err != nil {
		return nil, fmt.Errorf("fetch discounts: %w", err)
	}

	out := make([]Product, 0, len(env.Data))
	for _, p := range env.Data {
		if p.DiscountPercentage > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

// ByCategory fetches each category in turn and merges the results, dropping duplicates.
func (s *service) ByCategory(ctx context.Context, categories ...string) ([]Product, error) {
	log := logger.FromCtx(ctx).With(zap.Strings("categories", categories))

	seen := make(map[string]bool)
	var out []Product
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}

		var env api.Envelope[[]Product]
		if err := s.backend.Get(ctx, "/product/"+url.PathEscape(c), &env); err != nil {
			log.Warn("failed to fetch category products", zap.String("category", c), zap.Error(err))
			return nil, fmt.Errorf("fetch category %q: %w", c, err)
		}

		for _, p := range env.Data {
			if p.ID != "" && seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) Details(ctx context.Context, productID string) (*Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, ErrProductNotFound
	}

	var env api.Envelope[*Product]
	err := s.backend.Get(ctx, "/product/info/"+url.PathEscape(productID), &env)
	var be *api.BusinessError
	if errors.As(err, &be) && be.Status == 404 {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if env.Data == nil {
		return nil, ErrProductNotFound
	}
	return env.Data, nil
}
