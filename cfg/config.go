package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	KVBackendMemory   = "memory"
	KVBackendRedis    = "redis"
	KVBackendPostgres = "postgres"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type FlightProviderConfig struct {
	BaseURL string
	APIKey  string
}

type AirportProviderConfig struct {
	BaseURL string
	APIKey  string
}

type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv          string
	AppPort         string
	KVBackend       string
	HTTPTimeoutSecs int
	Redis           RedisConfig
	Postgres        PostgresConfig
	FlightProvider  FlightProviderConfig
	AirportProvider AirportProviderConfig
	OIDC            OIDCConfig
	Observability   ObservabilityConfig
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	kvBackend := envOr("KV_BACKEND", KVBackendMemory)
	switch kvBackend {
	case KVBackendMemory, KVBackendRedis, KVBackendPostgres:
	default:
		errs = append(errs, errors.New("invalid env KV_BACKEND: "+kvBackend))
	}

	cfg := &Config{
		AppEnv:          appEnv,
		AppPort:         appPort,
		KVBackend:       kvBackend,
		HTTPTimeoutSecs: 15,
		FlightProvider: FlightProviderConfig{
			BaseURL: os.Getenv("FLIGHT_PROVIDER_BASE_URL"),
			APIKey:  os.Getenv("FLIGHT_PROVIDER_API_KEY"),
		},
		AirportProvider: AirportProviderConfig{
			BaseURL: os.Getenv("AIRPORT_PROVIDER_BASE_URL"),
			APIKey:  os.Getenv("AIRPORT_PROVIDER_API_KEY"),
		},
		OIDC: OIDCConfig{
			IssuerURL:    os.Getenv("OIDC_ISSUER_URL"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  envOr("OTEL_SERVICE_NAME", "skytrip"),
			Environment:  appEnv,
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	if timeout := os.Getenv("HTTP_TIMEOUT_SECONDS"); timeout != "" {
		timeoutInt, err := strconv.Atoi(timeout)
		if err != nil {
			errs = append(errs, errors.New("conversion failed env: HTTP_TIMEOUT_SECONDS"))
		} else {
			cfg.HTTPTimeoutSecs = timeoutInt
		}
	}

	if kvBackend == KVBackendRedis {
		cfg.Redis = RedisConfig{
			Host:     mustEnv("REDIS_HOST", &errs),
			Port:     mustEnv("REDIS_PORT", &errs),
			Password: os.Getenv("REDIS_PASSWORD"),
		}
	}

	if kvBackend == KVBackendPostgres {
		cfg.Postgres = PostgresConfig{
			Host:     mustEnv("POSTGRES_HOST", &errs),
			Port:     mustEnv("POSTGRES_PORT", &errs),
			User:     mustEnv("POSTGRES_USER", &errs),
			Password: mustEnv("POSTGRES_PASSWORD", &errs),
			DBName:   mustEnv("POSTGRES_DB", &errs),
			SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return cfg, nil
}

// AuthEnabled reports whether an OIDC provider is fully configured. Booking
// routes fall back to guest mode when it is not.
func (c *Config) AuthEnabled() bool {
	o := c.OIDC
	return o.IssuerURL != "" && o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
