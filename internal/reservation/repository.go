package reservation

import (
	"context"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// ListByMember returns the member's reservations, latest reserved time first.
func (r *ReservationRepository) ListByMember(ctx context.Context, db *gorm.DB, memberID uint32, page pagination.Page) ([]model.Reservation, int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("member_id = ?", memberID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var reservations []model.Reservation
	err = db.WithContext(ctx).
		Preload("Restaurant").
		Where("member_id = ?", memberID).
		Order("reserved_datetime DESC").
		Order("id DESC").
		Scopes(page.Scope).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Reservation, error) {
	var reservation model.Reservation
	err := db.WithContext(ctx).Where("id = ?", ID).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) Create(ctx context.Context, db *gorm.DB, reservation *model.Reservation) error {
	return db.WithContext(ctx).Create(reservation).Error
}

func (r *ReservationRepository) Delete(ctx context.Context, db *gorm.DB, ID uint32) error {
	return db.WithContext(ctx).Where("id = ?", ID).Delete(&model.Reservation{}).Error
}

func (r *ReservationRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Reservation{}).Count(&count).Error
	return count, err
}
