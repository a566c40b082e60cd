package category

import (
	"context"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) List(ctx context.Context, db *gorm.DB) ([]model.Category, error) {
	var categories []model.Category
	err := db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

// Search matches keyword against the category name; an empty keyword lists all.
func (r *CategoryRepository) Search(ctx context.Context, db *gorm.DB, keyword string, page pagination.Page) ([]model.Category, int64, error) {
	query := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&model.Category{})
		if keyword != "" {
			q = q.Where("name LIKE ?", "%"+keyword+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []model.Category
	err := query().
		Order("id ASC").
		Scopes(page.Scope).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Category, error) {
	var category model.Category
	err := db.WithContext(ctx).Where("id = ?", ID).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// IsNameTaken reports whether name is used by a category other than exceptID.
func (r *CategoryRepository) IsNameTaken(ctx context.Context, db *gorm.DB, name string, exceptID uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Category{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, db *gorm.DB, category *model.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Save(ctx context.Context, db *gorm.DB, category *model.Category) error {
	return db.WithContext(ctx).Save(category).Error
}

// Delete removes the category and detaches it from every restaurant.
func (r *CategoryRepository) Delete(ctx context.Context, db *gorm.DB, ID uint32) error {
	if err := db.WithContext(ctx).Where("category_id = ?", ID).Delete(&model.CategoryRestaurant{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("id = ?", ID).Delete(&model.Category{}).Error
}

// CountByIDs returns how many of ids exist.
func (r *CategoryRepository) CountByIDs(ctx context.Context, db *gorm.DB, ids []uint32) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Category{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

type restaurantCategory struct {
	RestaurantID uint32
	ID           uint32
	Name         string
}

// FindByRestaurantIDs groups the attached categories by restaurant id.
func (r *CategoryRepository) FindByRestaurantIDs(ctx context.Context, db *gorm.DB, restaurantIDs []uint32) (map[uint32][]model.Category, error) {
	result := make(map[uint32][]model.Category, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return result, nil
	}

	var rows []restaurantCategory
	err := db.WithContext(ctx).
		Table("categories").
		Select("category_restaurant.restaurant_id, categories.id, categories.name").
		Joins("JOIN category_restaurant ON category_restaurant.category_id = categories.id").
		Where("category_restaurant.restaurant_id IN ?", restaurantIDs).
		Order("categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RestaurantID] = append(result[row.RestaurantID], model.Category{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

func (r *CategoryRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}
