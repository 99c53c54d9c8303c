package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stagepass/auth"
	"stagepass/config"
	"stagepass/dstore"
	"stagepass/events"
	"stagepass/identity"
	"stagepass/middleware"
	"stagepass/ratelim"
	"stagepass/rdx"
	"stagepass/routes"
	"stagepass/users"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.RequestURI,
			"remote", r.RemoteAddr,
			"duration", time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	})))

	// load .env if present
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using system environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := dstore.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		slog.Error("failed to connect to MongoDB", "err", err)
		os.Exit(1)
	}

	var cache *rdx.Cache
	if cfg.RedisAddr != "" {
		cache = rdx.New(cfg.RedisAddr)
	}

	// One-time key-set fetch. On failure the cache stays empty and every
	// protected request is rejected until restart: fail closed, never open.
	verifier := middleware.NewVerifier(cfg.JWKSURL())
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := verifier.LoadKeys(ctx); err != nil {
		slog.Error("unable to download JWKS; protected routes will reject all requests", "err", err)
	}
	cancel()

	rl := ratelim.NewRateLimiter()
	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddEventsRoutes(router, events.NewEngine(store, cache), verifier, rl)
	routes.AddUserRoutes(router, users.NewEngine(store), verifier, rl)
	routes.AddAuthRoutes(router, auth.NewHandler(identity.NewClient(cfg.IdentityBaseURL())), rl)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("ListenAndServe error", "err", err)
			os.Exit(1)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutdown signal received; shutting down gracefully")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	if err := store.Close(ctx); err != nil {
		slog.Error("failed to close store", "err", err)
	}

	slog.Info("server stopped cleanly")
}
