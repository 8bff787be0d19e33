package service

import (
	"context"
	"net/http"

	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// CatalogService owns products and categories.
type CatalogService struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	locale     config.Locale
	log        *zap.Logger
}

func NewCatalogService(products repository.ProductRepo, categories repository.CategoryRepo, locale config.Locale, log *zap.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, locale: locale, log: log}
}

func (s *CatalogService) validatePrices(prices models.Prices) error {
	if len(prices) == 0 {
		return NewAppError(http.StatusBadRequest, "Product must have at least one price.")
	}
	for _, p := range prices {
		if !config.Contains(s.locale.AllowedCurrencies, p.Currency) {
			return NewAppError(http.StatusBadRequest, "Allowed currencies are %v.", s.locale.AllowedCurrencies)
		}
		if !p.Value.IsPositive() {
			return NewAppError(http.StatusBadRequest, "Price value must be above 0.")
		}
	}
	return nil
}

// CreateProduct validates prices and derives the slug from the name.
func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := s.validatePrices(p.Prices); err != nil {
		return nil, err
	}
	p.Slug = slug.Make(p.Name)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct applies whitelisted changes; the slug is recomputed on every
// save that touches the name.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, changes *models.Product) (*models.Product, error) {
	if changes.Prices != nil {
		if err := s.validatePrices(changes.Prices); err != nil {
			return nil, err
		}
	}
	if changes.Name != "" {
		changes.Slug = slug.Make(changes.Name)
	}
	updated, err := s.products.Crud().UpdateOne(ctx, repository.Filter{"id": id}, changes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// AttachProductImages appends uploaded image containers to the product.
func (s *CatalogService) AttachProductImages(ctx context.Context, id uuid.UUID, containers models.ImageContainers) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	product.Images = append(product.Images, containers...)
	if err := s.products.UpdateImages(ctx, id, product.Images); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteCategory restricts deletion of referenced categories: a category that
// still has subcategories or products answers 409.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return NewAppError(http.StatusConflict, "The category is referenced by %d subcategories and can not be deleted.", children)
	}
	products, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return NewAppError(http.StatusConflict, "The category is referenced by %d products and can not be deleted.", products)
	}
	deleted, err := s.categories.Crud().DeleteOne(ctx, repository.Filter{"id": id})
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
