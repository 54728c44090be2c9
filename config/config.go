package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string
	Env  string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeSuccessURL    string
	StripeCancelURL     string

	EventBus            string // "kafka" (default) or "sns"
	KafkaBrokers        string
	PaymentEventsTopic  string
	SessionRequestTopic string
	SessionEventsTopic  string
	ConsumerGroupID     string
	PaymentSNSTopicARN  string // SNS topic ARN for payment events

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8088"),
		Env:                 getEnv("APP_ENV", "development"),
		StripeSecretKey:     os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeSuccessURL:    os.Getenv("STRIPE_SUCCESS_URL"),
		StripeCancelURL:     os.Getenv("STRIPE_CANCEL_URL"),
		EventBus:            getEnv("EVENT_BUS", "kafka"),
		KafkaBrokers:        getEnv("KAFKA_BROKERS", "localhost:9092"),
		PaymentEventsTopic:  getEnv("PAYMENT_EVENTS_TOPIC", "payment.succeeded"),
		SessionRequestTopic: getEnv("SESSION_REQUEST_TOPIC", "payment.session.requested"),
		SessionEventsTopic:  getEnv("SESSION_EVENTS_TOPIC", "checkout.session.events"),
		ConsumerGroupID:     getEnv("CONSUMER_GROUP_ID", "payments-gateway-group"),
		PaymentSNSTopicARN:  os.Getenv("PAYMENT_SNS_TOPIC_ARN"),
		PostgresUser:        os.Getenv("POSTGRES_USER"),
		PostgresPassword:    os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:          os.Getenv("POSTGRES_DB"),
		PostgresHost:        os.Getenv("POSTGRES_HOST"),
		PostgresPort:        getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:    getEnv("POSTGRES_TIMEZONE", "UTC"),
	}

	if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" ||
		cfg.StripeSuccessURL == "" || cfg.StripeCancelURL == "" {
		return nil, fmt.Errorf("missing required environment variables: STRIPE_API_KEY, STRIPE_WEBHOOK_SECRET, STRIPE_SUCCESS_URL and STRIPE_CANCEL_URL must be set")
	}

	switch cfg.EventBus {
	case "kafka":
	case "sns":
		if cfg.PaymentSNSTopicARN == "" {
			return nil, fmt.Errorf("EVENT_BUS=sns requires PAYMENT_SNS_TOPIC_ARN")
		}
	default:
		return nil, fmt.Errorf("unsupported EVENT_BUS %q: must be \"kafka\" or \"sns\"", cfg.EventBus)
	}

	return cfg, nil
}

// AuditEnabled reports whether the payment audit store should be used.
func (c *Config) AuditEnabled() bool {
	return c.PostgresHost != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
