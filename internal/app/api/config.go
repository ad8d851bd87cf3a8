package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process. It is read once at start.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	RedisAddr   string `env:"REDIS_ADDR"`

	KafkaBrokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrderTopic   string   `env:"KAFKA_ORDER_EVENTS_TOPIC" envDefault:"orders.events"`
	TemporalAddress   string   `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string   `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool     `env:"TEMPORAL_DISABLED"`

	YocoSecretKey string        `env:"YOCO_SECRET_KEY"`
	YocoPublicKey string        `env:"YOCO_PUBLIC_KEY"`
	YocoAPIURL    string        `env:"YOCO_API_URL" envDefault:"https://payments.yoco.com/api"`
	YocoTimeout   time.Duration `env:"YOCO_TIMEOUT" envDefault:"10s"`

	FrontendURL        string `env:"FRONTEND_URL"`
	CheckoutCurrency   string `env:"CHECKOUT_CURRENCY" envDefault:"ZAR"`
	EnforceTransitions bool   `env:"ORDERS_ENFORCE_TRANSITIONS" envDefault:"true"`

	PendingOrderTTL time.Duration `env:"PENDING_ORDER_TTL" envDefault:"24h"`

	SubmissionRatePerMinute int `env:"SUBMISSION_RATE_PER_MINUTE" envDefault:"30"`
	SubmissionBurst         int `env:"SUBMISSION_BURST" envDefault:"10"`

	MediaRoot           string        `env:"MEDIA_ROOT" envDefault:"media"`
	MediaURL            string        `env:"MEDIA_URL" envDefault:"/media/"`
	ReceiptImageTimeout time.Duration `env:"RECEIPT_IMAGE_TIMEOUT" envDefault:"5s"`
	ReceiptCompanyName  string        `env:"RECEIPT_COMPANY_NAME" envDefault:"Cedric House Planning"`
}

// LoadConfig reads an optional .env file, parses the environment, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	c.YocoSecretKey = strings.TrimSpace(c.YocoSecretKey)
	c.YocoPublicKey = strings.TrimSpace(c.YocoPublicKey)
	c.FrontendURL = strings.TrimRight(strings.TrimSpace(c.FrontendURL), "/")
	c.CheckoutCurrency = strings.ToUpper(strings.TrimSpace(c.CheckoutCurrency))
	if c.CheckoutCurrency == "" {
		c.CheckoutCurrency = "ZAR"
	}
	if c.TemporalAddress == "" {
		c.TemporalAddress = client.DefaultHostPort
	}
	if c.TemporalNamespace == "" {
		c.TemporalNamespace = client.DefaultNamespace
	}
	brokers := c.KafkaBrokers[:0]
	for _, b := range c.KafkaBrokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.KafkaBrokers = brokers
}

func (c Config) validate() error {
	if len(c.CheckoutCurrency) != 3 {
		return fmt.Errorf("CHECKOUT_CURRENCY must be a 3-letter ISO code, got %q", c.CheckoutCurrency)
	}
	if c.YocoTimeout <= 0 {
		return errors.New("YOCO_TIMEOUT must be positive")
	}
	if c.PendingOrderTTL <= 0 {
		return errors.New("PENDING_ORDER_TTL must be positive")
	}
	if c.ReceiptImageTimeout <= 0 {
		return errors.New("RECEIPT_IMAGE_TIMEOUT must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
