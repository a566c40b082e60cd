package database

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/model"

	"gorm.io/gorm"
)

// Migrate drops and recreates every table when DB_AUTO_MIGRATE is on.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	// Safety check: prevent accidental data loss in production
	if cfg.IsProduction() {
		return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!",
		"auto_migrate", true, "env", cfg.App.Env, "driver", cfg.Database.Driver,
	)

	if err := dropAll(db); err != nil {
		return err
	}

	slog.Info("📦 새 테이블 생성 중...")
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("테이블 생성 실패: %w", err)
	}

	slog.Info("✅ 마이그레이션 완료!")
	return nil
}

// dropAll drops tables in reverse dependency order (FK constraints)
func dropAll(db *gorm.DB) error {
	models := model.AllModels()
	slices.Reverse(models)

	migrator := db.Migrator()
	for _, m := range models {
		if !migrator.HasTable(m) {
			continue
		}
		if err := migrator.DropTable(m); err != nil {
			return fmt.Errorf("%T 테이블 삭제 실패: %w", m, err)
		}
		slog.Debug("테이블 삭제 성공", "model", fmt.Sprintf("%T", m))
	}
	return nil
}

// AutoMigrate creates or updates every table in dependency order.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range model.AllModels() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		slog.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}
	return nil
}
