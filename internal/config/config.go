package config

import (
	"log"
	"os"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type ResendConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	Environment      string
	Port             string
	DatabaseURL      string
	JWTSecret        string
	RevenueCatSecret string
	FalAPIKey        string
	R2               R2Config
	Resend           ResendConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Environment:      getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RevenueCatSecret: os.Getenv("REVENUECAT_SECRET"),
		FalAPIKey:        os.Getenv("FAL_API_KEY"),
	}

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Resend.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Resend.FromName = os.Getenv("EMAIL_FROM_NAME")

	for name, value := range map[string]string{
		"DATABASE_URL":      cfg.DatabaseURL,
		"JWT_SECRET":        cfg.JWTSecret,
		"REVENUECAT_SECRET": cfg.RevenueCatSecret,
	} {
		if value == "" {
			log.Fatalf("Missing required environment variable: %s", name)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
