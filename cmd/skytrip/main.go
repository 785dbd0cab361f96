package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"skytrip/cfg"
	"skytrip/internal/airport"
	"skytrip/internal/flight"
	"skytrip/internal/history"
	"skytrip/internal/trips"
	"skytrip/pkg/airportclient"
	"skytrip/pkg/auth"
	"skytrip/pkg/db"
	"skytrip/pkg/flightclient"
	"skytrip/pkg/idgen"
	"skytrip/pkg/kvstore"
	"skytrip/pkg/logger"
	"skytrip/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Skytrip Flight API
// @version         1.0
// @description     Flight search, airport lookup, and booking history.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// telemetry
	// ============
	shutdownOtel, err := telemetry.Setup(context.Background(), &config.Observability, zlogger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			zlogger.Error("failed to shutdown telemetry", logger.Field{Key: "err", Value: err})
		}
	}()

	// ============
	// key-value store
	// ============
	store, err := buildStore(config, zlogger)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// id generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(1)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// external services
	// ============
	httpClient := &http.Client{
		Timeout: time.Duration(config.HTTPTimeoutSecs) * time.Second,
	}

	var provider flight.Provider
	if config.FlightProvider.BaseURL != "" {
		provider = flightclient.NewRemoteProvider(httpClient,
			config.FlightProvider.BaseURL, config.FlightProvider.APIKey, zlogger)
	} else {
		zlogger.Info("no flight provider configured, using simulated flight data")
		provider = flightclient.NewSimulatedProvider()
	}

	var lookup airport.Lookup
	if config.AirportProvider.BaseURL != "" {
		lookup = airportclient.NewClient(httpClient,
			config.AirportProvider.BaseURL, config.AirportProvider.APIKey, zlogger)
	}

	// ============
	// internal services
	// ============
	flightClient := flight.NewClient(provider, zlogger)
	resolver := airport.NewResolver(lookup, zlogger)
	historyLog := history.NewLog(store, ids, zlogger)
	historyLog.Load(context.Background())

	// ============
	// auth (optional)
	// ============
	var requireAuth gin.HandlerFunc
	var authManager *auth.Manager
	if config.AuthEnabled() {
		authManager, err = auth.NewManager(context.Background(), &config.OIDC)
		if err != nil {
			log.Fatal(err)
		}
		requireAuth = auth.RequireSession(authManager)
	} else {
		zlogger.Warn("no identity provider configured, booking runs in guest mode")
	}

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(telemetry.TraceLoggerMiddleware(zlogger))

	flight.NewHandler(flightClient, historyLog, zlogger).RegisterRoutes(r)
	airport.NewHandler(resolver).RegisterRoutes(r)
	history.NewHandler(historyLog).RegisterRoutes(r, requireAuth)
	trips.NewHandler().RegisterRoutes(r)
	if authManager != nil {
		auth.RegisterRoutes(r, authManager)
	}
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore picks the persistence backend for history lists.
func buildStore(config *cfg.Config, zlogger logger.Client) (kvstore.Store, error) {
	switch config.KVBackend {
	case cfg.KVBackendRedis:
		addr := config.Redis.Host + ":" + config.Redis.Port
		return kvstore.NewRedisStore(addr, config.Redis.Password), nil

	case cfg.KVBackendPostgres:
		pg := config.Postgres
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			pg.User, pg.Password, pg.Host, pg.Port, pg.DBName, pg.SSLMode,
		)

		m, err := migrate.New("file://db/migrations", dsn)
		if err != nil {
			return nil, err
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return nil, err
		}

		client, err := db.NewSQLClient("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(client), nil

	default:
		zlogger.Warn("using in-memory store, history will not survive restarts")
		return kvstore.NewMemoryStore(), nil
	}
}

// initSwagger serves the OpenAPI document generated by
// `swag init -g cmd/skytrip/main.go`.
func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
