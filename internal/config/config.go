package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// RecommendConfig overrides the documented default blend weights. Zero values
// fall back to the defaults in the recommendation usecase.
type RecommendConfig struct {
	CosineWeight       float64
	LLRWeight          float64
	PeerSkillWeight    float64
	PeerTitleWeight    float64
	PeerMatchPctWeight float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              opt("DB_HOST"),
		DBPort:              opt("DB_PORT"),
		DBName:              opt("DB_NAME"),
		DBUser:              opt("DB_USER"),
		DBPassword:          opt("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE"),
		PoolMaxConns:        int32(envInt(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:        int32(envInt(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime: envSeconds(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  envSeconds(opt("JWT_ACCESS_EXPIRES_IN"), 15*time.Minute),
		RefreshExpiresIn: envSeconds(opt("JWT_REFRESH_EXPIRES_IN"), 24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      envSeconds(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.Recommend = RecommendConfig{
		CosineWeight:       envFloat(opt("RECOMMEND_COSINE_WEIGHT"), 0),
		LLRWeight:          envFloat(opt("RECOMMEND_LLR_WEIGHT"), 0),
		PeerSkillWeight:    envFloat(opt("RECOMMEND_PEER_SKILL_WEIGHT"), 0),
		PeerTitleWeight:    envFloat(opt("RECOMMEND_PEER_TITLE_WEIGHT"), 0),
		PeerMatchPctWeight: envFloat(opt("RECOMMEND_PEER_MATCH_PCT_WEIGHT"), 0),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envFloat(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func envSeconds(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
