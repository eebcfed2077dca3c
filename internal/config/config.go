package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	minSecretLength = 16
)

type Config struct {
	Port              string
	DBDriver          string
	MongoURI          string
	DBName            string
	MongoTransactions bool
	JWTSecret         string
	PaymentSecretKey  string
	PaymentCurrency   string
	RequestTimeout    time.Duration
	RateLimit         float64
	RateBurst         int
	LogLevel          string
	LogFormat         string
	CORSOrigins       []string
}

// LoadConfig reads .env (if present) and the process environment. Secrets
// have no defaults; a missing one is reported as an error.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, reading the process environment only")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error

	cfg := Config{
		Port:             get("PORT", "5000"),
		DBDriver:         strings.ToLower(get("DB_DRIVER", DriverMongo)),
		DBName:           get("DB_NAME", "bistroBossRestaurant"),
		JWTSecret:        getenv("ACCESS_TOKEN_SECRET"),
		PaymentSecretKey: getenv("PAYMENT_SECRET_KEY"),
		PaymentCurrency:  strings.ToLower(get("PAYMENT_CURRENCY", "usd")),
		LogLevel:         get("LOG_LEVEL", "info"),
		LogFormat:        get("LOG_FORMAT", "console"),
		CORSOrigins:      splitList(get("CORS_ORIGINS", "*")),
	}

	switch cfg.DBDriver {
	case DriverMongo, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, cfg.DBDriver))
	}

	if cfg.DBDriver == DriverMongo {
		cfg.MongoURI = getenv("MONGO_URI")
		if cfg.MongoURI == "" {
			user, pass, host := getenv("DB_USER"), getenv("DB_PASS"), getenv("DB_HOST")
			if user == "" || pass == "" || host == "" {
				errs = append(errs, errors.New("MONGO_URI or DB_USER/DB_PASS/DB_HOST is required"))
			} else {
				cfg.MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
					url.QueryEscape(user), url.QueryEscape(pass), host)
			}
		}
	}

	var err error
	if cfg.MongoTransactions, err = strconv.ParseBool(get("MONGO_TRANSACTIONS", "false")); err != nil {
		errs = append(errs, fmt.Errorf("MONGO_TRANSACTIONS: %w", err))
	}
	if cfg.RequestTimeout, err = time.ParseDuration(get("REQUEST_TIMEOUT", "15s")); err != nil || cfg.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be a positive duration"))
	}
	if cfg.RateLimit, err = strconv.ParseFloat(get("RATE_LIMIT", "10"), 64); err != nil || cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT must be a positive number"))
	}
	if cfg.RateBurst, err = strconv.Atoi(get("RATE_BURST", "20")); err != nil || cfg.RateBurst <= 0 {
		errs = append(errs, errors.New("RATE_BURST must be a positive integer"))
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is required"))
	} else if len(cfg.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_SECRET must be at least %d bytes", minSecretLength))
	}
	if cfg.PaymentSecretKey == "" {
		errs = append(errs, errors.New("PAYMENT_SECRET_KEY is required"))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
