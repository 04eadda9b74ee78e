package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by DB_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Model backends understood by MODEL_BACKEND.
const (
	BackendFile   = "file"
	BackendRemote = "remote"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	RequestTimeout time.Duration
	CORSOrigins    []string

	DBDriver   string
	MySQLDSN   string
	SQLitePath string

	RedisAddr     string
	RedisDB       int
	RedisPass     string
	PriceCacheTTL time.Duration

	ModelBackend   string
	ModelServerURL string
	ModelTimeout   time.Duration

	CropModelPath        string
	CropMinMaxPath       string
	CropStandardPath     string
	PriceModelPath       string
	MarketEncoderPath    string
	CommodityEncoderPath string
	UnitEncoderPath      string
	DatasetPath          string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel  string
	LogFormat string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	modelDir := getEnv("MODEL_DIR", "models")
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/farmers_connect?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath: getEnv("SQLITE_PATH", "farmers_connect.db"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		PriceCacheTTL: getEnvDuration("PRICE_CACHE_TTL", 10*time.Minute),

		ModelBackend:   strings.ToLower(getEnv("MODEL_BACKEND", BackendFile)),
		ModelServerURL: os.Getenv("MODEL_SERVER_URL"),
		ModelTimeout:   getEnvDuration("MODEL_TIMEOUT", 3*time.Second),

		CropModelPath:        getEnv("CROP_MODEL_PATH", modelDir+"/crop_model.json"),
		CropMinMaxPath:       getEnv("CROP_MINMAX_PATH", modelDir+"/minmaxscaler.json"),
		CropStandardPath:     getEnv("CROP_STANDARD_PATH", modelDir+"/standscaler.json"),
		PriceModelPath:       getEnv("PRICE_MODEL_PATH", modelDir+"/crop_price_model.json"),
		MarketEncoderPath:    getEnv("MARKET_ENCODER_PATH", modelDir+"/le_market.json"),
		CommodityEncoderPath: getEnv("COMMODITY_ENCODER_PATH", modelDir+"/le_commodity.json"),
		UnitEncoderPath:      getEnv("UNIT_ENCODER_PATH", modelDir+"/le_unit.json"),
		DatasetPath:          getEnv("PRICE_DATASET_PATH", "wfp_food_prices_ken.csv"),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
