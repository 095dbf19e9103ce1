package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-manager/config"
	httpLayer "loan-manager/http"
	"loan-manager/repository"
	"loan-manager/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	log.Printf("Using %s loan store", cfg.StoreBackend)

	loanService := service.NewLoanService(store)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Deps{
		Service:     loanService,
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: rateLimiter,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Loan API listening on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
	case <-quit:
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("Error closing store: %v", err)
	}

	log.Println("Server exited")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.LoanStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		return repository.NewMongoLoanStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)
	case config.BackendRedis:
		store := repository.NewRedisLoanStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil
	case config.BackendPostgres:
		return repository.NewPostgresLoanStore(ctx, cfg.DatabaseURL)
	case config.BackendMemory:
		return repository.NewLoanRepositoryMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
