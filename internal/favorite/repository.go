package favorite

import (
	"context"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct{}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{}
}

// Add attaches the restaurant. An existing pair is left as it is and reports false.
func (r *FavoriteRepository) Add(ctx context.Context, db *gorm.DB, memberID, restaurantID uint32) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Favorite{
			MemberID:     memberID,
			RestaurantID: restaurantID,
			CreatedAt:    time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove detaches the restaurant and reports whether a row was deleted.
func (r *FavoriteRepository) Remove(ctx context.Context, db *gorm.DB, memberID, restaurantID uint32) (bool, error) {
	result := db.WithContext(ctx).
		Where("member_id = ? AND restaurant_id = ?", memberID, restaurantID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
