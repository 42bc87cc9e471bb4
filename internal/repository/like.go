package repository

import (
	"context"
	"errors"

	"github.com/rratchapol/backend/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for user-product likes.
type LikeRepository interface {
	All(ctx context.Context) ([]models.Like, error)
	GetByID(ctx context.Context, userlikeID uint) (*models.Like, error)
	// FindByUser returns all likes recorded by the given user. Show-by-user
	// is the historical read-one contract for likes.
	FindByUser(ctx context.Context, userID uint) ([]models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Update(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userlikeID uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteByProduct(ctx context.Context, productID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) All(ctx context.Context) ([]models.Like, error) {
	likes := make([]models.Like, 0)
	if err := r.db.WithContext(ctx).Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *likeRepository) GetByID(ctx context.Context, userlikeID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, userlikeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Like")
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *likeRepository) FindByUser(ctx context.Context, userID uint) ([]models.Like, error) {
	likes := make([]models.Like, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Update(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Save(like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userlikeID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Like{}, userlikeID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) DeleteByProduct(ctx context.Context, productID uint) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
