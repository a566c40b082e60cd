package admin

import (
	"context"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"gorm.io/gorm"
)

type AdminRepository struct{}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Admin, error) {
	var admin model.Admin
	err := db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
