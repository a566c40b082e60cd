package member

import (
	"context"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (m *MemberRepository) IsExist(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// IsEmailTaken reports whether email belongs to a member other than exceptID.
func (m *MemberRepository) IsEmailTaken(ctx context.Context, db *gorm.DB, email string, exceptID uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (m *MemberRepository) Save(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Save(member).Error
}

func (m *MemberRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", ID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateBillingCustomerID sets the billing reference only if none is stored yet,
// so two concurrent first-time flows keep the first customer.
func (m *MemberRepository) UpdateBillingCustomerID(ctx context.Context, db *gorm.DB, memberID uint32, customerID string) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ? AND billing_customer_id IS NULL", memberID).
		Update("billing_customer_id", customerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Search matches keyword against name and kana; an empty keyword lists everyone.
func (m *MemberRepository) Search(ctx context.Context, db *gorm.DB, keyword string, page pagination.Page) ([]model.Member, int64, error) {
	query := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&model.Member{})
		if keyword != "" {
			like := "%" + keyword + "%"
			q = q.Where("name LIKE ? OR kana LIKE ?", like, like)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []model.Member
	err := query().
		Order("id ASC").
		Scopes(page.Scope).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (m *MemberRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Member{}).Count(&count).Error
	return count, err
}
