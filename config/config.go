package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 从环境变量读取
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr string
	RedisPwd  string

	WebOrigin  string
	Port       string
	SessionTTL time.Duration

	// 逗号分隔的管理员邮箱，兜底 IsAdmin 标记
	AdminEmails []string

	SweepInterval time.Duration
}

// LoadEnv 读取 .env（存在时），部署环境直接用真实环境变量
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println(".env loaded")
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func FromEnv() Config {
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(get("SESSION_TTL", "")); err == nil && d > 0 {
		ttl = d
	}
	sweep := time.Hour
	if d, err := time.ParseDuration(get("OVERDUE_SWEEP_INTERVAL", "")); err == nil && d > 0 {
		sweep = d
	}

	var admins []string
	for _, s := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if t := strings.TrimSpace(s); t != "" {
			admins = append(admins, strings.ToLower(t))
		}
	}

	return Config{
		DBHost:        get("DB_HOST", "127.0.0.1"),
		DBUser:        get("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        get("DB_NAME", "toolport"),
		DBPort:        get("DB_PORT", "5432"),
		RedisAddr:     get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:      os.Getenv("REDIS_PASSWORD"),
		WebOrigin:     get("WEB_ORIGIN", "http://localhost:5173"),
		Port:          get("PORT", "3001"),
		SessionTTL:    ttl,
		AdminEmails:   admins,
		SweepInterval: sweep,
	}
}
