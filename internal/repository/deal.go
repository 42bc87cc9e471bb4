package repository

import (
	"context"
	"errors"

	"github.com/rratchapol/backend/internal/models"

	"gorm.io/gorm"
)

// DealRepository defines persistence operations for deals.
type DealRepository interface {
	All(ctx context.Context) ([]models.Deal, error)
	GetByID(ctx context.Context, id uint) (*models.Deal, error)
	// FindByBuyer returns all deals placed by the given buyer. Show-by-buyer
	// is the historical read-one contract for deals.
	FindByBuyer(ctx context.Context, buyerID uint) ([]models.Deal, error)
	Create(ctx context.Context, deal *models.Deal) error
	Update(ctx context.Context, deal *models.Deal) error
	Delete(ctx context.Context, id uint) error
	CountByBuyer(ctx context.Context, buyerID uint) (int64, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	DeleteByBuyer(ctx context.Context, buyerID uint) error
	DeleteByProduct(ctx context.Context, productID uint) error
}

type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository returns a new DealRepository implementation.
func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) All(ctx context.Context) ([]models.Deal, error) {
	deals := make([]models.Deal, 0)
	if err := r.db.WithContext(ctx).Find(&deals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return deals, nil
}

func (r *dealRepository) GetByID(ctx context.Context, id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.WithContext(ctx).First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Deal")
		}
		return nil, models.NewInternalError(err)
	}
	return &deal, nil
}

func (r *dealRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]models.Deal, error) {
	deals := make([]models.Deal, 0)
	if err := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Find(&deals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return deals, nil
}

func (r *dealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if err := r.db.WithContext(ctx).Create(deal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dealRepository) Update(ctx context.Context, deal *models.Deal) error {
	if err := r.db.WithContext(ctx).Save(deal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dealRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Deal{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dealRepository) CountByBuyer(ctx context.Context, buyerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Deal{}).Where("buyer_id = ?", buyerID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *dealRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Deal{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *dealRepository) DeleteByBuyer(ctx context.Context, buyerID uint) error {
	if err := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Delete(&models.Deal{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *dealRepository) DeleteByProduct(ctx context.Context, productID uint) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.Deal{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
