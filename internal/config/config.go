package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	RedisURL   string
	JWTSecret  string
	ServerPort string

	// Fallback SMTP transport, used until admin-stored settings exist.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Access-window lengths per plan type, in days. Quarterly is a fixed
	// 90-day business rule and deliberately has no knob here.
	SingleAccessDays int
	KitAccessDays    int
	SchoolAccessDays int
}

func LoadConfig() (*Config, error) {
	// .env is optional outside local dev
	_ = godotenv.Load()

	return &Config{
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "elearning"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		ServerPort:       getEnv("SERVER_PORT", ":8080"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		SMTPFrom:         os.Getenv("SMTP_FROM"),
		SingleAccessDays: getEnvInt("SINGLE_ACCESS_DAYS", 365),
		KitAccessDays:    getEnvInt("KIT_ACCESS_DAYS", 365),
		SchoolAccessDays: getEnvInt("SCHOOL_ACCESS_DAYS", 365),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
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
