package main

import (
	"encoding/json"
	stdlog "log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"github.com/username/honorarios/src/config"
	"github.com/username/honorarios/src/database"
	"github.com/username/honorarios/src/handlers"
	"github.com/username/honorarios/src/logger"
	"github.com/username/honorarios/src/processors"
	"github.com/username/honorarios/src/security/validation"
	"github.com/username/honorarios/src/services"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"
)

func rateLimitMiddleware(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "If-None-Match", handlers.UserIDHeader, handlers.RequestIDHeader},
		ExposedHeaders:   []string{"ETag", handlers.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(next)
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Honorarios reporting server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing report cache...", "ttl", config.Cfg.ReportCacheTTL, "cleanup", config.Cfg.ReportCacheCleanup)
	reportCache := cache.New(config.Cfg.ReportCacheTTL, config.Cfg.ReportCacheCleanup)

	logger.L.Info("Initializing services and handlers...")
	clock := processors.SystemClock
	years := services.NewPinnedYearResolver(clock, config.Cfg.PinnedYears)
	fees := processors.NewFeeCalculator()
	filter := processors.NewTemporalFilter(clock)
	reportService := services.NewReportService(
		database.NewTransactionStore(database.DB),
		database.NewProfileStore(database.DB),
		services.NewSessionRegistry(clock, years, services.DefaultSessionExpiration),
		years,
		filter,
		processors.NewSearchMatcher(),
		processors.NewAggregator(fees, filter),
		reportCache,
	)

	validate := validation.NewValidator()
	txHandler := handlers.NewTransactionHandler(reportService, validate)
	profileHandler := handlers.NewProfileHandler(reportService, validate, config.Cfg.DefaultCurrency)
	reportHandler := handlers.NewReportHandler(reportService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := handlers.NewAPIRouter(txHandler, profileHandler, reportHandler)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Honorarios backend is running"})
		} else if !strings.HasPrefix(r.URL.Path, "/api/") {
			logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	logger.L.Info("Applying global middleware...")
	limiter := rate.NewLimiter(rate.Limit(config.Cfg.RateLimitRPS), config.Cfg.RateLimitBurst)
	finalHandler := corsMiddleware(config.Cfg.AllowedOrigins,
		handlers.RequestIDMiddleware(
			rateLimitMiddleware(limiter,
				handlers.MaxBodyMiddleware(config.Cfg.MaxRequestBodyBytes)(rootMux))))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", serverAddr)
	if err != nil {
		stdlog.Fatalf("Failed to listen on %s: %v", serverAddr, err)
	}
	if config.Cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, config.Cfg.MaxConnections)
	}

	logger.L.Info("Server starting", "address", serverAddr, "maxConnections", config.Cfg.MaxConnections)
	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
