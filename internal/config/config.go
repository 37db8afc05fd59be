package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	System struct {
		IsProd bool
		Listen string
		DBConn string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Security struct {
		AccessSecret  string
		RefreshSecret string
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
}

// Load maps environment variables onto a Config. Only DB_CONN is
// mandatory; everything else has a development default or is optional.
func Load() (*Config, error) {
	cfg := &Config{}

	mode := os.Getenv("MODE")
	cfg.System.IsProd = strings.HasPrefix(strings.ToLower(mode), "p")

	cfg.System.Listen = envOr("LISTEN", ":3001")

	dbconn, exist := os.LookupEnv("DB_CONN")
	if !exist {
		dbconn = "user:password@tcp(127.0.0.1:3306)/sozluk?charset=utf8mb4&parseTime=True"
	}
	cfg.System.DBConn = dbconn

	cfg.Redis.Addr = envOr("REDIS_ADDR", "127.0.0.1:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		n, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, err
		}
		cfg.Redis.DB = n
	}

	cfg.Security.AccessSecret = os.Getenv("JWT_SECRET")
	cfg.Security.RefreshSecret = os.Getenv("REFRESH_TOKEN_SECRET")

	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	cfg.SMTP.Port = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		n, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg.SMTP.Port = n
	}
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.SMTP.From = os.Getenv("SMTP_FROM")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Kafka.Topic = envOr("KAFKA_TOPIC", "moderation-events")

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, exist := os.LookupEnv(key); exist {
		return v
	}
	return fallback
}
