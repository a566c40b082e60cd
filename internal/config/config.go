package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE resolves without system zoneinfo

	"github.com/joho/godotenv"
)

const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BillingStripe = "stripe"
	BillingLocal  = "local"

	StorageS3    = "s3"
	StorageLocal = "local"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Server    ServerConfig
	Redis     RedisConfig
	Billing   BillingConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     int
	Timezone string
	Location *time.Location // reservation date/time 해석 기준
}

type DatabaseConfig struct {
	Driver          string // oracle | postgres | sqlite
	Host            string
	Port            int
	Service         string // oracle service name / postgres database name
	Path            string // sqlite file
	User            string
	Password        string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SlowThreshold   time.Duration
	IsAutoMigrate   bool // true: 테이블 재생성, false: 마이그레이션 비활성화
	IsSeed          bool
}

type JWTConfig struct {
	MemberSecret  string
	AdminSecret   string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	RequestTimeout  time.Duration
}

// RedisConfig holds the session revocation store. An empty URL disables revocation.
type RedisConfig struct {
	URL string
}

type BillingConfig struct {
	Driver         string // stripe | local
	SecretKey      string
	PremiumPriceID string
	PlanName       string
}

type StorageConfig struct {
	Driver         string // s3 | local
	LocalDir       string
	PublicBaseURL  string
	MaxUploadBytes int64
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

type RateLimitConfig struct {
	LoginPerSecond int
	LoginBurst     int
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("환경 변수 로드 실패: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "nagoyameshi-api"),
			Env:      env,
			Port:     getEnvAsInt("APP_PORT", 8080),
			Timezone: getEnv("APP_TIMEZONE", "Asia/Tokyo"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverOracle),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvAsInt("DB_PORT", 1521),
			Service:         getEnv("DB_SERVICE", ""),
			Path:            getEnv("DB_PATH", "nagoyameshi.db"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			SlowThreshold:   getEnvAsDuration("DB_SLOW_THRESHOLD", "200ms"),
			IsAutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", false), // 기본값: false (안전)
			IsSeed:          getEnvAsBool("DB_SEED", false),
		},
		JWT: JWTConfig{
			MemberSecret:  getEnv("JWT_MEMBER_SECRET", ""),
			AdminSecret:   getEnv("JWT_ADMIN_SECRET", ""),
			Expiry:        getEnvAsDuration("JWT_EXPIRY", "24h"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
			RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", "30s"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Billing: BillingConfig{
			Driver:         getEnv("BILLING_DRIVER", BillingStripe),
			SecretKey:      getEnv("STRIPE_SECRET", ""),
			PremiumPriceID: getEnv("STRIPE_PREMIUM_PRICE_ID", ""),
			PlanName:       getEnv("BILLING_PLAN_NAME", "premium_plan"),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", StorageLocal),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicBaseURL:  getEnv("STORAGE_PUBLIC_BASE_URL", "/uploads"),
			MaxUploadBytes: int64(getEnvAsInt("STORAGE_MAX_UPLOAD_BYTES", 2<<20)),
			S3Bucket:       getEnv("S3_BUCKET", ""),
			S3Region:       getEnv("S3_REGION", "ap-northeast-1"),
			S3Endpoint:     getEnv("S3_ENDPOINT", ""),
			S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
			S3UsePathStyle: getEnvAsBool("S3_USE_PATH_STYLE", false),
		},
		RateLimit: RateLimitConfig{
			LoginPerSecond: getEnvAsInt("LOGIN_RATE_PER_SECOND", 5),
			LoginBurst:     getEnvAsInt("LOGIN_RATE_BURST", 10),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("환경 변수 검증 실패 : %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("환경 변수 파일을 찾을 수 없습니다. 시스템 환경 변수를 사용합니다.",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("환경 변수 파일 로드 오류: %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("환경 변수 파일 로드", "file", absPath)
	return nil
}

// Validate checks required settings and resolves derived values such as App.Location.
func (c *Config) Validate() error {
	var errors []string

	// App validation
	if c.App.Port < 1 || c.App.Port > 65535 {
		errors = append(errors, "유효하지 않은 포트 번호")
	}
	if c.App.Location == nil {
		loc, err := time.LoadLocation(c.App.Timezone)
		if err != nil {
			errors = append(errors, fmt.Sprintf("유효하지 않은 타임존: %s", c.App.Timezone))
		} else {
			c.App.Location = loc
		}
	}

	// Database validation
	switch c.Database.Driver {
	case DriverOracle, DriverPostgres:
		if c.Database.Host == "" {
			errors = append(errors, "데이터베이스 Host가 필요합니다")
		}
		if c.Database.Service == "" {
			errors = append(errors, "데이터베이스 Service가 필요합니다")
		}
		if c.Database.User == "" {
			errors = append(errors, "데이터베이스 User가 필요합니다")
		}
		if c.Database.Password == "" {
			errors = append(errors, "데이터베이스 Password가 필요합니다")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			errors = append(errors, "데이터베이스 Path가 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 데이터베이스 드라이버: %s", c.Database.Driver))
	}

	// JWT validation
	if len(c.JWT.MemberSecret) < 32 {
		errors = append(errors, "JWT Member Secret Key는 32자 이상이어야 합니다")
	}
	if len(c.JWT.AdminSecret) < 32 {
		errors = append(errors, "JWT Admin Secret Key는 32자 이상이어야 합니다")
	}
	if c.JWT.MemberSecret != "" && c.JWT.MemberSecret == c.JWT.AdminSecret {
		errors = append(errors, "Member/Admin JWT Secret Key는 서로 달라야 합니다")
	}

	// Billing validation
	switch c.Billing.Driver {
	case BillingStripe:
		if c.Billing.SecretKey == "" {
			errors = append(errors, "STRIPE_SECRET가 필요합니다")
		}
		if c.Billing.PremiumPriceID == "" {
			errors = append(errors, "STRIPE_PREMIUM_PRICE_ID가 필요합니다")
		}
	case BillingLocal:
		if c.IsProduction() {
			errors = append(errors, "production 환경에서는 local billing을 사용할 수 없습니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 billing 드라이버: %s", c.Billing.Driver))
	}

	// Storage validation
	switch c.Storage.Driver {
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			errors = append(errors, "S3_BUCKET이 필요합니다")
		}
	case StorageLocal:
		if c.Storage.LocalDir == "" {
			errors = append(errors, "STORAGE_LOCAL_DIR이 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 storage 드라이버: %s", c.Storage.Driver))
	}

	if len(errors) > 0 {
		return fmt.Errorf("유효성 검사 오류: %s", strings.Join(errors, ", "))
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
