package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/taxmate/backend/src/config"
	"github.com/username/taxmate/backend/src/database"
	"github.com/username/taxmate/backend/src/engine"
	"github.com/username/taxmate/backend/src/handlers"
	"github.com/username/taxmate/backend/src/logger"
	"github.com/username/taxmate/backend/src/security"
	"github.com/username/taxmate/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
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

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Requested-With, Cookie")
			w.Header().Set("Access-Control-Expose-Headers", "X-CSRF-Token")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("TaxMate backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}
	if len(config.Cfg.CSRFAuthKey) < 32 {
		logger.L.Error("CSRF_AUTH_KEY must be at least 32 bytes long.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing snapshot cache...")
	snapshotCache := cache.New(15*time.Minute, 30*time.Minute)

	logger.L.Info("Initializing services and handlers...")
	authService := security.NewAuthService(config.Cfg.JWTSecret)
	emailService := services.NewEmailService()
	taxEngine := engine.NewTaxEngine()

	recordService := services.NewRecordService(database.DB)
	snapshotService := services.NewSnapshotService(database.DB, taxEngine, recordService, snapshotCache)
	filingService := services.NewFilingService(database.DB, snapshotService, emailService)
	invoiceService := services.NewInvoiceService(database.DB, recordService)

	userHandler := handlers.NewUserHandler(authService)
	recordHandler := handlers.NewRecordHandler(recordService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	profileHandler := handlers.NewProfileHandler()
	filingHandler := handlers.NewFilingHandler(filingService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/auth/csrf", handlers.GetCSRFToken)

	authActionRouter := http.NewServeMux()
	authActionRouter.HandleFunc("POST /login", userHandler.LoginUserHandler)
	authActionRouter.HandleFunc("POST /register", userHandler.RegisterUserHandler)
	authActionRouter.HandleFunc("POST /refresh", userHandler.RefreshTokenHandler)
	authActionRouter.HandleFunc("POST /logout", userHandler.AuthMiddleware(userHandler.LogoutUserHandler))

	apiRouter.Handle("/api/auth/", http.StripPrefix("/api/auth", handlers.CSRFMiddleware(config.Cfg.CSRFAuthKey)(authActionRouter)))

	csrfProtection := handlers.CSRFMiddleware(config.Cfg.CSRFAuthKey)
	applyCsrfAndAuth := func(handler http.HandlerFunc) http.Handler {
		return csrfProtection(http.HandlerFunc(userHandler.AuthMiddleware(handler)))
	}

	apiRouter.Handle("GET /api/records", applyCsrfAndAuth(recordHandler.HandleListRecords))
	apiRouter.Handle("POST /api/records", applyCsrfAndAuth(recordHandler.HandleCreateRecord))
	apiRouter.Handle("PUT /api/records/{id}", applyCsrfAndAuth(recordHandler.HandleUpdateRecord))
	apiRouter.Handle("DELETE /api/records/{id}", applyCsrfAndAuth(recordHandler.HandleDeleteRecord))
	apiRouter.Handle("DELETE /api/records", applyCsrfAndAuth(recordHandler.HandleDeleteAllRecords))

	apiRouter.Handle("GET /api/profile", applyCsrfAndAuth(profileHandler.HandleGetProfile))
	apiRouter.Handle("PUT /api/profile", applyCsrfAndAuth(profileHandler.HandleUpdateProfile))

	apiRouter.Handle("GET /api/snapshot", applyCsrfAndAuth(snapshotHandler.HandleGetSnapshot))
	apiRouter.Handle("GET /api/capital-gains", applyCsrfAndAuth(snapshotHandler.HandleGetCapitalGains))
	apiRouter.Handle("GET /api/risk", applyCsrfAndAuth(snapshotHandler.HandleGetRisk))

	apiRouter.Handle("POST /api/filings", applyCsrfAndAuth(filingHandler.HandleSubmitFiling))
	apiRouter.Handle("GET /api/filings", applyCsrfAndAuth(filingHandler.HandleListFilings))

	apiRouter.Handle("POST /api/invoices", applyCsrfAndAuth(invoiceHandler.HandleIssueInvoice))
	apiRouter.Handle("GET /api/invoices", applyCsrfAndAuth(invoiceHandler.HandleListInvoices))

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "TaxMate backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
