package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       catalog.ProductCache
	logger      *zap.Logger
}

// NewProductService creates a new product service.
// The cache may be nil, in which case all reads hit the repository.
func NewProductService(productRepo catalog.ProductRepository, cache catalog.ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		logger:      logger,
	}
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductInfo, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, input.SKU)
	if err != nil {
		s.logger.Error("Failed to check SKU existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}
	if exists {
		return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(input.SKU, input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		if err := product.Update(input.Name, input.Description); err != nil {
			return nil, err
		}
	}
	if input.Frame != (catalog.FrameAttributes{}) {
		if err := product.SetFrame(input.Frame); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != "" {
		if err := product.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.Model3DURL != "" {
		if err := product.SetModel3DURL(input.Model3DURL); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
		}
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	info := NewProductInfo(product)
	return &info, nil
}

// GetProduct retrieves a product by ID, serving from cache when possible
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductInfo, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, productID)
		if err != nil {
			// Degrade to the repository on cache failure
			s.logger.Warn("Product cache read failed", zap.Error(err))
		} else if cached != nil {
			info := NewProductInfo(cached)
			return &info, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product, 0); err != nil {
			s.logger.Warn("Product cache write failed", zap.Error(err))
		}
	}

	info := NewProductInfo(product)
	return &info, nil
}

// GetProductBySKU retrieves a product by SKU
func (s *ProductService) GetProductBySKU(ctx context.Context, sku string) (*ProductInfo, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := NewProductInfo(product)
	return &info, nil
}

// ListProducts returns a page of products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	filter := catalog.NewProductFilter().
		WithKeyword(input.Keyword).
		WithPagination(input.Page, input.PageSize).
		WithSort(input.SortBy, input.SortOrder)
	if input.Status != nil {
		filter = filter.WithStatus(*input.Status)
	}
	filter.Category = input.Category
	filter.Style = input.Style
	filter.FrameColor = input.FrameColor

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	infos := make([]ProductInfo, 0, len(products))
	for _, p := range products {
		infos = append(infos, NewProductInfo(p))
	}

	return &ProductListResult{
		Products: infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateProduct updates product fields. Nil input fields are left unchanged.
func (s *ProductService) UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	name := product.Name
	description := product.Description
	if input.Name != nil {
		name = *input.Name
	}
	if input.Description != nil {
		description = *input.Description
	}
	if name != product.Name || description != product.Description {
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}
	if input.Price != nil {
		if err := product.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Frame != nil {
		if err := product.SetFrame(*input.Frame); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		if err := product.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.Model3DURL != nil {
		if err := product.SetModel3DURL(*input.Model3DURL); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.invalidate(ctx, product.ID)

	info := NewProductInfo(product)
	return &info, nil
}

// AdjustStock sets the absolute stock level for a product
func (s *ProductService) AdjustStock(ctx context.Context, input AdjustStockInput) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := product.SetStock(input.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to adjust stock", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to adjust stock")
	}

	s.invalidate(ctx, product.ID)

	s.logger.Info("Stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.Int("stock", product.Stock))

	info := NewProductInfo(product)
	return &info, nil
}

// ActivateProduct makes a product visible and purchasable
func (s *ProductService) ActivateProduct(ctx context.Context, productID uuid.UUID) error {
	return s.transition(ctx, productID, func(p *catalog.Product) error { return p.Activate() })
}

// DeactivateProduct hides a product from the catalog
func (s *ProductService) DeactivateProduct(ctx context.Context, productID uuid.UUID) error {
	return s.transition(ctx, productID, func(p *catalog.Product) error { return p.Deactivate() })
}

// DiscontinueProduct permanently retires a product
func (s *ProductService) DiscontinueProduct(ctx context.Context, productID uuid.UUID) error {
	return s.transition(ctx, productID, func(p *catalog.Product) error { return p.Discontinue() })
}

// DeleteProduct removes a product from the catalog. Active products must be
// deactivated or discontinued first; products referenced by order items
// cannot be deleted at all.
func (s *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return shared.ErrNotFound
	}
	if product.Status == catalog.ProductStatusActive {
		return shared.NewDomainError("CANNOT_DELETE_ACTIVE", "Deactivate or discontinue the product before deleting it")
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		s.logger.Error("Failed to delete product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *ProductService) transition(ctx context.Context, productID uuid.UUID, fn func(*catalog.Product) error) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := fn(product); err != nil {
		return err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productID); err != nil {
		s.logger.Warn("Product cache invalidation failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
	}
}
