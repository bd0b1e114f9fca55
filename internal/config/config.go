package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreBackend string

const (
	StoreMongo    StoreBackend = "mongo"
	StorePostgres StoreBackend = "postgres"
	StoreMemory   StoreBackend = "memory"
)

type Settings struct {
	Env      string
	Port     string
	LogLevel string

	StoreBackend  StoreBackend
	MongoURI      string
	MongoDatabase string
	DatabaseDSN   string

	RabbitURI      string
	RabbitExchange string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StartGuardTTL time.Duration

	GeminiModel string
}

var settings *Settings

// Init loads settings and configures the logger. Safe to call more than once.
func Init() *Settings {
	if settings != nil {
		return settings
	}
	settings = Load()
	initLogger(settings)
	return settings
}

// Load reads a .env file when present and then the process environment.
func Load() *Settings {
	_ = godotenv.Load()

	s := &Settings{
		Env:      getEnv("APP_ENV", "local"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend:  StoreBackend(strings.ToLower(getEnv("STORE_BACKEND", string(StoreMongo)))),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "classroom"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),

		RabbitURI:      os.Getenv("RABBITMQ_URI"),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "classroom.events"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PWD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		StartGuardTTL: getEnvDuration("START_GUARD_TTL", 30*time.Second),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}
	return s
}

func (s *Settings) IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
