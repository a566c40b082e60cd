package review

import (
	"context"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// ListByRestaurant returns the restaurant's reviews, newest first.
func (r *ReviewRepository) ListByRestaurant(ctx context.Context, db *gorm.DB, restaurantID uint32, page pagination.Page) ([]model.Review, int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&model.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err = db.WithContext(ctx).
		Preload("Member").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Order("id DESC").
		Scopes(page.Scope).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Review, error) {
	var review model.Review
	err := db.WithContext(ctx).Where("id = ?", ID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Create(ctx context.Context, db *gorm.DB, review *model.Review) error {
	return db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) Save(ctx context.Context, db *gorm.DB, review *model.Review) error {
	return db.WithContext(ctx).Save(review).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, db *gorm.DB, ID uint32) error {
	return db.WithContext(ctx).Where("id = ?", ID).Delete(&model.Review{}).Error
}

func (r *ReviewRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Review{}).Count(&count).Error
	return count, err
}
