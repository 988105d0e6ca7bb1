package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stockflow/internal/caching"
	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

const productCacheTTL = 5 * time.Minute

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)

	UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	ImageURL(ctx context.Context, id uuid.UUID) (string, error)

	ListVariants(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error)
	CreateVariant(ctx context.Context, variant *models.ProductVariant) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo  repositories.ProductRepository
	variantRepo  repositories.ProductVariantRepository
	categoryRepo repositories.CategoryRepository
	cache        caching.CacheService
	storage      StorageService
	log          zerolog.Logger
}

func NewProductService(
	productRepo repositories.ProductRepository,
	variantRepo repositories.ProductVariantRepository,
	categoryRepo repositories.CategoryRepository,
	cache caching.CacheService,
	storage StorageService,
	log zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		storage:      storage,
		log:          log,
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if err := s.validate(ctx, product); err != nil {
		return err
	}
	product.ID = uuid.New()
	if err := s.productRepo.Create(ctx, product); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.NewValidationError("sku", "A product with this SKU or barcode already exists")
		}
		if repositories.IsForeignKeyViolation(err) {
			return common.NewNotFoundError("Category")
		}
		return common.NewInventoryError("failed to create product", err)
	}
	return nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cache.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Product")
		}
		return nil, common.NewInventoryError("failed to fetch product", err)
	}

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("product_id", id.String()).Msg("product cache write failed")
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	if err := s.validate(ctx, product); err != nil {
		return err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.NewValidationError("sku", "A product with this SKU or barcode already exists")
		}
		return common.NewInventoryError("failed to update product", err)
	}
	if err := s.cache.DeleteProduct(ctx, product.ID); err != nil {
		s.log.Warn().Err(err).Str("product_id", product.ID.String()).Msg("product cache invalidation failed")
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewBusinessRuleError("Product is referenced by stock or orders and cannot be deleted")
		}
		return common.NewInventoryError("failed to delete product", err)
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id.String()).Msg("product cache invalidation failed")
	}
	return nil
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	return s.productRepo.List(ctx, limit, offset)
}

func (s *productService) Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.productRepo.Search(ctx, filter)
}

func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("products/%s/%s", product.ID.String(), filename)
	if err := s.storage.Upload(ctx, objectName, contentType, reader, size); err != nil {
		return "", common.NewInventoryError("failed to upload image", err)
	}
	if err := s.productRepo.UpdateImageObject(ctx, id, &objectName); err != nil {
		return "", common.NewInventoryError("failed to link image", err)
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id.String()).Msg("product cache invalidation failed")
	}
	return objectName, nil
}

func (s *productService) ImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if product.ImageObject == nil {
		return "", common.NewNotFoundError("Product image")
	}
	url, err := s.storage.PresignedURL(ctx, *product.ImageObject, time.Hour)
	if err != nil {
		return "", common.NewInventoryError("failed to presign image URL", err)
	}
	return url, nil
}

func (s *productService) ListVariants(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	return s.variantRepo.ListByProduct(ctx, productID)
}

func (s *productService) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	variant.ID = uuid.New()
	if err := s.variantRepo.Create(ctx, variant); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewNotFoundError("Product")
		}
		return common.NewInventoryError("failed to create variant", err)
	}
	return nil
}

func (s *productService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return s.variantRepo.Delete(ctx, id)
}

func (s *productService) validate(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if product.SKU == "" {
		return common.NewValidationError("sku", "This field is required")
	}
	if product.UnitPrice.IsNegative() {
		return common.NewValidationError("unit_price", "Must not be negative")
	}
	if _, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Category")
		}
		return common.NewInventoryError("failed to check category", err)
	}
	return nil
}
