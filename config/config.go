package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Points     PointsConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8080"`
	Env          string        `envconfig:"APP_ENV" default:"development"`
	LogLevel     string        `envconfig:"APP_LOG_LEVEL" default:"info"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	DSN             string        `envconfig:"DB_DSN" default:"goodturn:goodturn@tcp(localhost:3306)/goodturn?charset=utf8mb4&parseTime=True&loc=UTC"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"change-me-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"change-me-refresh"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`
	Issuer        string        `envconfig:"JWT_ISSUER" default:"goodturn"`
}

type OAuthConfig struct {
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL"`
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"CLOUDINARY_API_SECRET"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// PointsConfig carries the tunable parts of the points engine. The category
// rate table and trust ladder themselves are code-owned defaults; these knobs
// cover the bits operations actually asks to change.
type PointsConfig struct {
	StreakBonusDays      int           `envconfig:"POINTS_STREAK_BONUS_DAYS" default:"7"`
	StreakBonus          float64       `envconfig:"POINTS_STREAK_BONUS" default:"1.2"`
	TrustScoreBaseline   float64       `envconfig:"POINTS_TRUST_SCORE_BASELINE" default:"10"`
	TrustScoreScale      float64       `envconfig:"POINTS_TRUST_SCORE_SCALE" default:"30"`
	StatsCacheTTL        time.Duration `envconfig:"POINTS_STATS_CACHE_TTL" default:"5m"`
	LeaderboardCacheTTL  time.Duration `envconfig:"POINTS_LEADERBOARD_CACHE_TTL" default:"10m"`
	DBSExpiryWarningDays int           `envconfig:"DBS_EXPIRY_WARNING_DAYS" default:"30"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
