package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/billing"
	"github.com/nagoyameshi/go-api-server/internal/bootstrap"
	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/router"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/validator"
	"github.com/nagoyameshi/go-api-server/internal/storage"
)

func main() {
	env := parseFlags()

	logger.Setup(env)
	slog.Info("서버 초기화 시작", "env", env)

	if err := run(env); err != nil {
		slog.Error("서버 실행 실패", "error", err)
		os.Exit(1)
	}

	slog.Info("서버 종료 완료", "env", env)
}

func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

func run(env string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	slog.Info("환경 변수 로드 성공", "timezone", cfg.App.Timezone)

	if err := validator.RegisterAll(); err != nil {
		return fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	deps, err := buildDependencies(ctx, cfg, db)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			slog.Error("데이터베이스 종료 실패", "error", cerr)
		}
		return err
	}

	srv := setupServer(deps)
	srv.OnShutdown("database", db.Close)
	srv.OnShutdown("session_store", deps.Revoker.Close)

	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// buildDependencies opens the external collaborators other than the database.
func buildDependencies(ctx context.Context, cfg *config.Config, db *database.DB) (router.Dependencies, error) {
	var revoker session.Revoker = session.NewNoopRevoker()
	if cfg.Redis.URL != "" {
		redisRevoker, err := session.NewRedisRevoker(cfg.Redis.URL)
		if err != nil {
			return router.Dependencies{}, fmt.Errorf("세션 저장소 연결 실패: %w", err)
		}
		revoker = redisRevoker
	} else {
		slog.Warn("REDIS_URL 미설정: 로그아웃한 토큰이 만료 전까지 유효합니다")
	}

	billingClient, err := billing.New(cfg, db.DB)
	if err != nil {
		revoker.Close()
		return router.Dependencies{}, fmt.Errorf("결제 클라이언트 초기화 실패: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		revoker.Close()
		return router.Dependencies{}, fmt.Errorf("스토리지 초기화 실패: %w", err)
	}

	slog.Info("외부 의존성 준비 완료",
		"billing", cfg.Billing.Driver,
		"storage", cfg.Storage.Driver,
		"session_store", cfg.Redis.URL != "",
	)

	return router.Dependencies{
		Config:  cfg,
		DB:      db,
		Metrics: metrics.New(),
		Revoker: revoker,
		Billing: billingClient,
		Store:   store,
	}, nil
}

func setupServer(deps router.Dependencies) *bootstrap.Server {
	boot := bootstrap.NewBootstrap(deps.Config, deps.Metrics)
	ginEngine := boot.SetupEngine()

	router.Setup(ginEngine, deps)

	slog.Info("서버 설정 완료", "env", deps.Config.App.Env)

	return bootstrap.New(deps.Config, ginEngine)
}

func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("서버 오류: %w", err)
		}
		return nil

	case sig := <-quit:
		slog.Info("종료 신호 수신됨", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		slog.Info("서버 종료 중...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		return nil
	}
}
