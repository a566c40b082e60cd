package restaurant

import (
	"context"
	"strings"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	averageScoreColumn     = "(SELECT AVG(reviews.score) FROM reviews WHERE reviews.restaurant_id = restaurants.id) AS average_score"
	reservationCountColumn = "(SELECT COUNT(*) FROM reservations WHERE reservations.restaurant_id = restaurants.id) AS reservation_count"
)

// Sort keys accepted by Search.
const (
	SortRating      = "rating"
	SortPopular     = "popular"
	SortLowestPrice = "lowest_price"
	SortCreatedAt   = "created_at"
)

var sortColumns = map[string]string{
	SortRating:      "average_score",
	SortPopular:     "reservation_count",
	SortLowestPrice: "restaurants.lowest_price",
	SortCreatedAt:   "restaurants.created_at",
}

// Row is a restaurant together with its review and reservation aggregates.
type Row struct {
	model.Restaurant
	AverageScore     *float64 `gorm:"column:average_score"`
	ReservationCount int64    `gorm:"column:reservation_count"`
}

// Filter narrows a restaurant search. Zero values mean "no filter".
type Filter struct {
	Keyword    string
	NameOnly   bool // match the keyword against the name alone
	CategoryID uint32
	MaxPrice   int
	Sort       string
	Descending bool
}

type RestaurantRepository struct{}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{}
}

func (r *RestaurantRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := db.WithContext(ctx).Where("id = ?", ID).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindRowByID loads one restaurant with its aggregates.
func (r *RestaurantRepository) FindRowByID(ctx context.Context, db *gorm.DB, ID uint32) (*Row, error) {
	var row Row
	err := r.rows(ctx, db).
		Where("restaurants.id = ?", ID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *RestaurantRepository) Exists(ctx context.Context, db *gorm.DB, ID uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Restaurant{}).Where("id = ?", ID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, db *gorm.DB, restaurant *model.Restaurant) error {
	return db.WithContext(ctx).Create(restaurant).Error
}

func (r *RestaurantRepository) Save(ctx context.Context, db *gorm.DB, restaurant *model.Restaurant) error {
	return db.WithContext(ctx).Save(restaurant).Error
}

// Delete removes the restaurant and everything that references it.
func (r *RestaurantRepository) Delete(ctx context.Context, db *gorm.DB, ID uint32) error {
	dependents := []any{
		&model.CategoryRestaurant{},
		&model.RegularHolidayRestaurant{},
		&model.Reservation{},
		&model.Review{},
		&model.Favorite{},
	}
	for _, dependent := range dependents {
		if err := db.WithContext(ctx).Where("restaurant_id = ?", ID).Delete(dependent).Error; err != nil {
			return err
		}
	}
	return db.WithContext(ctx).Where("id = ?", ID).Delete(&model.Restaurant{}).Error
}

func (r *RestaurantRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Restaurant{}).Count(&count).Error
	return count, err
}

// Search applies filter and returns one page of rows plus the total match count.
func (r *RestaurantRepository) Search(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Page) ([]Row, int64, error) {
	var total int64
	if err := applyFilter(db.WithContext(ctx).Model(&model.Restaurant{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Row
	err := applyFilter(r.rows(ctx, db), filter).
		Order(orderClause(filter.Sort, filter.Descending)).
		Order(tieBreak(filter.Descending)).
		Scopes(page.Scope).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// HighlyRated returns the best reviewed restaurants first.
func (r *RestaurantRepository) HighlyRated(ctx context.Context, db *gorm.DB, limit int) ([]Row, error) {
	return r.top(ctx, db, orderClause(SortRating, true), limit)
}

// Newest returns the most recently added restaurants.
func (r *RestaurantRepository) Newest(ctx context.Context, db *gorm.DB, limit int) ([]Row, error) {
	return r.top(ctx, db, "restaurants.id DESC", limit)
}

// Popular returns the most reserved restaurants first.
func (r *RestaurantRepository) Popular(ctx context.Context, db *gorm.DB, limit int) ([]Row, error) {
	return r.top(ctx, db, orderClause(SortPopular, true), limit)
}

func (r *RestaurantRepository) top(ctx context.Context, db *gorm.DB, order string, limit int) ([]Row, error) {
	var rows []Row
	err := r.rows(ctx, db).
		Order(order).
		Order("restaurants.id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// FavoritesOf returns memberID's favorite restaurants, most recently added first.
func (r *RestaurantRepository) FavoritesOf(ctx context.Context, db *gorm.DB, memberID uint32, page pagination.Page) ([]Row, int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("member_id = ?", memberID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []Row
	err = r.rows(ctx, db).
		Joins("JOIN favorites ON favorites.restaurant_id = restaurants.id").
		Where("favorites.member_id = ?", memberID).
		Order("favorites.created_at DESC").
		Order("restaurants.id DESC").
		Scopes(page.Scope).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *RestaurantRepository) rows(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Model(&model.Restaurant{}).
		Select("restaurants.*, " + averageScoreColumn + ", " + reservationCountColumn)
}

// SyncCategories replaces the restaurant's categories with categoryIDs.
func (r *RestaurantRepository) SyncCategories(ctx context.Context, db *gorm.DB, restaurantID uint32, categoryIDs []uint32) error {
	if err := db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Delete(&model.CategoryRestaurant{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]model.CategoryRestaurant, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, model.CategoryRestaurant{RestaurantID: restaurantID, CategoryID: categoryID})
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// SyncHolidays replaces the restaurant's regular holidays with holidayIDs.
func (r *RestaurantRepository) SyncHolidays(ctx context.Context, db *gorm.DB, restaurantID uint32, holidayIDs []uint32) error {
	if err := db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Delete(&model.RegularHolidayRestaurant{}).Error; err != nil {
		return err
	}
	if len(holidayIDs) == 0 {
		return nil
	}

	links := make([]model.RegularHolidayRestaurant, 0, len(holidayIDs))
	for _, holidayID := range holidayIDs {
		links = append(links, model.RegularHolidayRestaurant{RestaurantID: restaurantID, RegularHolidayID: holidayID})
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *RestaurantRepository) ListRegularHolidays(ctx context.Context, db *gorm.DB) ([]model.RegularHoliday, error) {
	var holidays []model.RegularHoliday
	err := db.WithContext(ctx).Order("id ASC").Find(&holidays).Error
	return holidays, err
}

func (r *RestaurantRepository) HolidaysOf(ctx context.Context, db *gorm.DB, restaurantID uint32) ([]model.RegularHoliday, error) {
	var holidays []model.RegularHoliday
	err := db.WithContext(ctx).
		Joins("JOIN regular_holiday_restaurant ON regular_holiday_restaurant.regular_holiday_id = regular_holidays.id").
		Where("regular_holiday_restaurant.restaurant_id = ?", restaurantID).
		Order("regular_holidays.id ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *RestaurantRepository) CountHolidays(ctx context.Context, db *gorm.DB, ids []uint32) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.RegularHoliday{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// IsFavorited reports whether memberID has the restaurant in their favorites.
func (r *RestaurantRepository) IsFavorited(ctx context.Context, db *gorm.DB, memberID, restaurantID uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("member_id = ? AND restaurant_id = ?", memberID, restaurantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyFilter(q *gorm.DB, filter Filter) *gorm.DB {
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		if filter.NameOnly {
			q = q.Where("restaurants.name LIKE ?", like)
		} else {
			q = q.Where(
				"restaurants.name LIKE ? OR restaurants.address LIKE ? OR EXISTS ("+
					"SELECT 1 FROM category_restaurant JOIN categories ON categories.id = category_restaurant.category_id "+
					"WHERE category_restaurant.restaurant_id = restaurants.id AND categories.name LIKE ?)",
				like, like, like,
			)
		}
	}
	if filter.CategoryID != 0 {
		q = q.Where(
			"EXISTS (SELECT 1 FROM category_restaurant WHERE category_restaurant.restaurant_id = restaurants.id AND category_restaurant.category_id = ?)",
			filter.CategoryID,
		)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("restaurants.lowest_price <= ?", filter.MaxPrice)
	}
	return q
}

// orderClause maps a sort key to SQL. Unknown keys fall back to created_at.
func orderClause(sort string, descending bool) string {
	column, ok := sortColumns[sort]
	if !ok {
		column = sortColumns[SortCreatedAt]
	}
	direction := " ASC"
	if descending {
		direction = " DESC"
	}
	if sort == SortRating {
		return column + direction + " NULLS LAST"
	}
	return column + direction
}

func tieBreak(descending bool) string {
	if descending {
		return "restaurants.id DESC"
	}
	return "restaurants.id ASC"
}
