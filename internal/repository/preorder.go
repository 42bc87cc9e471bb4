package repository

import (
	"context"
	"errors"

	"github.com/rratchapol/backend/internal/models"

	"gorm.io/gorm"
)

// PreorderRepository defines persistence operations for preorders.
type PreorderRepository interface {
	All(ctx context.Context) ([]models.Preorder, error)
	GetByID(ctx context.Context, id uint) (*models.Preorder, error)
	FindByBuyer(ctx context.Context, buyerID uint) ([]models.Preorder, error)
	Create(ctx context.Context, preorder *models.Preorder) error
	Update(ctx context.Context, preorder *models.Preorder) error
	Delete(ctx context.Context, id uint) error
	CountByBuyer(ctx context.Context, buyerID uint) (int64, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	DeleteByBuyer(ctx context.Context, buyerID uint) error
	DeleteByProduct(ctx context.Context, productID uint) error
}

type preorderRepository struct {
	db *gorm.DB
}

// NewPreorderRepository returns a new PreorderRepository implementation.
func NewPreorderRepository(db *gorm.DB) PreorderRepository {
	return &preorderRepository{db: db}
}

func (r *preorderRepository) All(ctx context.Context) ([]models.Preorder, error) {
	preorders := make([]models.Preorder, 0)
	if err := r.db.WithContext(ctx).Find(&preorders).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return preorders, nil
}

func (r *preorderRepository) GetByID(ctx context.Context, id uint) (*models.Preorder, error) {
	var preorder models.Preorder
	if err := r.db.WithContext(ctx).First(&preorder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Preorder")
		}
		return nil, models.NewInternalError(err)
	}
	return &preorder, nil
}

func (r *preorderRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]models.Preorder, error) {
	preorders := make([]models.Preorder, 0)
	if err := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Find(&preorders).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return preorders, nil
}

func (r *preorderRepository) Create(ctx context.Context, preorder *models.Preorder) error {
	if err := r.db.WithContext(ctx).Create(preorder).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *preorderRepository) Update(ctx context.Context, preorder *models.Preorder) error {
	if err := r.db.WithContext(ctx).Save(preorder).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *preorderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Preorder{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *preorderRepository) CountByBuyer(ctx context.Context, buyerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Preorder{}).Where("buyer_id = ?", buyerID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *preorderRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Preorder{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *preorderRepository) DeleteByBuyer(ctx context.Context, buyerID uint) error {
	if err := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Delete(&models.Preorder{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *preorderRepository) DeleteByProduct(ctx context.Context, productID uint) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.Preorder{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
