package repository

import (
	"context"
	"errors"

	"github.com/rratchapol/backend/internal/cache"
	"github.com/rratchapol/backend/internal/models"

	"gorm.io/gorm"
)

// productListColumns is the whitelist of product columns eligible for listing,
// sorting, and search.
var productListColumns = []string{
	"id", "product_name", "product_qty", "product_price", "product_description",
	"item_category", "item_type", "seller_id", "date_exp",
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, p ListParams) (*ListResult[models.Product], error)
	CountBySeller(ctx context.Context, sellerID uint) (int64, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a new ProductRepository implementation.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product

	err := cache.Aside(ctx, cache.ProductKey(id), &product, cache.ProductTTL, func() error {
		if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Product")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, product.ID)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, id)
	return nil
}

func (r *productRepository) List(ctx context.Context, p ListParams) (*ListResult[models.Product], error) {
	return listCollection[models.Product](ctx, r.db, productListColumns, p)
}

func (r *productRepository) CountBySeller(ctx context.Context, sellerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("seller_id = ?", sellerID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *productRepository) FindBySeller(ctx context.Context, sellerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Find(&products).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}
