package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultAuditSampleRate = 0.1

type Config struct {
	Port               string
	DBConnectionString string
	JWTSecret          string

	// AuditSampleRate is the fraction of dashboard reads that get an audit
	// event, in [0, 1]. Mutations are always audited.
	AuditSampleRate float64

	// RedisAddr empty means the shared rate-limit store is not configured
	// and the limiter runs purely in-process.
	RedisAddr     string
	RedisPassword string

	BankAPIURL      string
	BankClientID    string
	BankSecret      string
	BankRedirectURI string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	cfg := &Config{
		Port:               os.Getenv("PORT"),
		DBConnectionString: os.Getenv("DB_CONNECTION_STRING"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		BankAPIURL:         os.Getenv("BANK_API_URL"),
		BankClientID:       os.Getenv("BANK_CLIENT_ID"),
		BankSecret:         os.Getenv("BANK_SECRET"),
		BankRedirectURI:    os.Getenv("BANK_REDIRECT_URI"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.AuditSampleRate = defaultAuditSampleRate
	if raw := os.Getenv("AUDIT_SAMPLE_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 || rate > 1 {
			log.Printf("Invalid AUDIT_SAMPLE_RATE %q, using default %v", raw, defaultAuditSampleRate)
		} else {
			cfg.AuditSampleRate = rate
		}
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("no JWT_SECRET provided")
	}
	if cfg.DBConnectionString == "" {
		return nil, errors.New("missing DB_CONNECTION_STRING in environment variables")
	}

	return cfg, nil
}
