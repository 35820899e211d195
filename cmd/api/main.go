package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/eventhub/eventhub-go/internal/config"
	"github.com/eventhub/eventhub-go/internal/handler"
	"github.com/eventhub/eventhub-go/internal/mail"
	"github.com/eventhub/eventhub-go/internal/middleware"
	"github.com/eventhub/eventhub-go/internal/repository"
	"github.com/eventhub/eventhub-go/internal/service"
	"github.com/eventhub/eventhub-go/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := repository.Migrate(context.Background(), db); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied")
	}

	probe := repository.NewStatusColumnProbe(db)
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db, probe)

	var store storage.Store
	var diskStore *storage.DiskStore
	if cfg.StorageURL != "" {
		slog.Info("asset storage: hosted bucket", "url", cfg.StorageURL, "bucket", cfg.StorageBucket)
		store = storage.NewBucketClient(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket)
	} else {
		slog.Info("asset storage: local disk", "dir", cfg.UploadDir)
		diskStore, err = storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			slog.Error("upload dir setup failed", "error", err)
			os.Exit(1)
		}
		store = diskStore
	}

	dispatcher := mail.NewDispatcher(mail.FromConfig(cfg))

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	eventService := service.NewEventService(eventRepo, store)
	regService := service.NewRegistrationService(regRepo, eventRepo, userRepo, dispatcher)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	eventHandler := handler.NewEventHandler(eventService, regService)
	regHandler := handler.NewRegistrationHandler(regService)
	mailHandler := handler.NewMailHandler(dispatcher)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/signup", authHandler.HandleSignup)
		r.Post("/api/login", authHandler.HandleLogin)
	})

	// Public event surface.
	r.Get("/api/events", eventHandler.HandleList)
	r.Get("/api/events/{id}", eventHandler.HandleGet)
	r.Get("/api/events/{id}/registrations", eventHandler.HandleListRegistrations)
	r.Post("/api/events/{id}/register", eventHandler.HandleRegister)

	// Dev utility; logs in dev mode, sends when a transport is configured.
	r.Post("/api/send-email", mailHandler.HandleSendEmail)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/verify", authHandler.HandleVerify)
		r.Get("/api/users", userHandler.HandleList)
		r.Get("/api/users/me", userHandler.HandleMe)
		r.Post("/api/events", eventHandler.HandleCreate)
		r.Get("/api/events/my", eventHandler.HandleListMine)
		r.Put("/api/registrations/{id}/accept", regHandler.HandleAccept)
		r.Put("/api/registrations/{id}/reject", regHandler.HandleReject)
		r.Delete("/api/registrations/{id}", regHandler.HandleDelete)
	})

	if diskStore != nil {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(diskStore.Dir())))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	dispatcher.Flush()
	slog.Info("server stopped")
}
