package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type holidaySeed struct {
	day   string
	value *int
}

func weekday(n int) *int { return &n }

var regularHolidays = []holidaySeed{
	{"月", weekday(1)},
	{"火", weekday(2)},
	{"水", weekday(3)},
	{"木", weekday(4)},
	{"金", weekday(5)},
	{"土", weekday(6)},
	{"日", weekday(0)},
	{"祝日", nil},
}

// Seed inserts the fixed regular holidays and the bootstrap admin when DB_SEED is on.
// It is idempotent.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsSeed {
		return nil
	}

	return WithTransaction(ctx, db, func(tx *gorm.DB) error {
		for _, h := range regularHolidays {
			holiday := model.RegularHoliday{Day: h.day, Value: h.value}
			if err := tx.Where(model.RegularHoliday{Day: h.day}).FirstOrCreate(&holiday).Error; err != nil {
				return fmt.Errorf("seed regular holiday %s: %w", h.day, err)
			}
		}

		if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
			slog.Info("🌱 시드 완료 (admin 생략)", "regular_holidays", len(regularHolidays))
			return nil
		}

		var count int64
		if err := tx.Model(&model.Admin{}).Where("email = ?", cfg.Seed.AdminEmail).Count(&count).Error; err != nil {
			return fmt.Errorf("check admin: %w", err)
		}
		if count == 0 {
			hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin := model.Admin{Email: cfg.Seed.AdminEmail, Password: string(hashed)}
			if err := tx.Create(&admin).Error; err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
		}

		slog.Info("🌱 시드 완료", "regular_holidays", len(regularHolidays), "admin", logger.MaskEmail(cfg.Seed.AdminEmail))
		return nil
	})
}
