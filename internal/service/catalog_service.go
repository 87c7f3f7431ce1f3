package service

import (
	"context"

	"github.com/ovenlight/bakery-storefront/internal/cache"
	"github.com/ovenlight/bakery-storefront/internal/models"
)

// Repo required by the service (interface to allow mocking)
type CatalogRepo interface {
	ListProducts(ctx context.Context, f models.CatalogFilter) ([]models.Product, error)
	CountProducts(ctx context.Context, f models.CatalogFilter) (int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type CatalogService struct {
	repo      CatalogRepo
	slugCache *cache.ProductCache
}

func NewCatalogService(repo CatalogRepo) *CatalogService {
	return &CatalogService{
		repo:      repo,
		slugCache: cache.NewProductCache(),
	}
}

// ListProducts runs the page query and the count query concurrently; neither
// depends on the other's result. Both see the same filter, so under a static
// dataset the total agrees with the full result set; a concurrent write
// between the two reads may skew the total slightly, which is accepted.
func (s *CatalogService) ListProducts(ctx context.Context, f models.CatalogFilter) (*models.CatalogPage, error) {
	type countResult struct {
		total int
		err   error
	}

	countCh := make(chan countResult, 1)
	go func() {
		total, err := s.repo.CountProducts(ctx, f)
		countCh <- countResult{total: total, err: err}
	}()

	products, listErr := s.repo.ListProducts(ctx, f)
	count := <-countCh

	if listErr != nil {
		return nil, listErr
	}
	if count.err != nil {
		return nil, count.err
	}

	totalPages := 0
	if count.total > 0 {
		totalPages = (count.total + f.Limit - 1) / f.Limit
	}

	return &models.CatalogPage{
		Products: products,
		Pagination: models.Pagination{
			Total:      count.total,
			Page:       f.Page,
			Limit:      f.Limit,
			TotalPages: totalPages,
		},
	}, nil
}

// GetProductBySlug serves the detail path, trying the in-process cache first.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if p, ok := s.slugCache.Get(slug); ok {
		return p, nil
	}
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.slugCache.Set(slug, p)
	return p, nil
}
