package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	awspkg "storefront/pkg/aws"
)

type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	RedisURL         string
	JWTSecret        string
	AllowedOrigins   string

	KafkaBrokers string
	KafkaTopic   string
	SNSTopicArn  string
	S3Bucket     string

	// Checkout pricing knobs
	TaxRate               float64
	ShippingFee           float64
	FreeShippingThreshold float64

	// Payment gateway: "mock" or "stripe"
	PaymentGateway   string
	StripeSecretKey  string
	MockApprovalRate float64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("ORDER_EVENTS_TOPIC", "order.events"),
		SNSTopicArn:  os.Getenv("SNS_ORDER_TOPIC_ARN"),
		S3Bucket:     os.Getenv("S3_PRODUCT_IMAGES_BUCKET"),

		TaxRate:               getEnvFloat("TAX_RATE", 0.08),
		ShippingFee:           getEnvFloat("SHIPPING_FEE", 10.0),
		FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 100.0),

		PaymentGateway:   getEnv("PAYMENT_GATEWAY", "mock"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		MockApprovalRate: getEnvFloat("MOCK_APPROVAL_RATE", 0.8),
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)

			var creds map[string]string
			if err := sm.GetSecretJSON(context.Background(), "storefront/DB_CREDENTIALS", &creds); err == nil {
				if v := creds["POSTGRES_USER"]; v != "" {
					cfg.PostgresUser = v
				}
				if v := creds["POSTGRES_PASSWORD"]; v != "" {
					cfg.PostgresPassword = v
				}
				if v := creds["POSTGRES_DB"]; v != "" {
					cfg.PostgresDB = v
				}
				if v := creds["POSTGRES_HOST"]; v != "" {
					cfg.PostgresHost = v
				}
				if v := creds["POSTGRES_PORT"]; v != "" {
					cfg.PostgresPort = v
				}
			}
			if secret, err := sm.GetSecret(context.Background(), "storefront/JWT_SECRET"); err == nil && secret != "" {
				cfg.JWTSecret = secret
			}
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.PaymentGateway == "stripe" && cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required when PAYMENT_GATEWAY=stripe")
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
