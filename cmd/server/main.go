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

	"github.com/nestfolio/nestfolio-backend/internal/adapter/repository/postgres"
	"github.com/nestfolio/nestfolio-backend/internal/adapter/rest"
	"github.com/nestfolio/nestfolio-backend/internal/adapter/snaptrade"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/asset"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/dashboard"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/importer"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/linking"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/seeder"
)

const (
	defaultAPIToken = "dev-token"
	defaultAddr     = ":8080"
)

func main() {
	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "nestfolio")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 2. Initialize Repositories (Postgres)
	assetRepo := postgres.NewAssetRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)

	// 3. Initialize the linking client
	snaptradeClient := snaptrade.NewClient(snaptrade.Config{
		ClientID:     os.Getenv("SNAPTRADE_CLIENT_ID"),
		APIKey:       os.Getenv("SNAPTRADE_CLIENT_SECRET"),
		BaseURL:      os.Getenv("SNAPTRADE_BASE_URL"),
		Broker:       os.Getenv("SNAPTRADE_BROKER"),
		SecretPrefix: os.Getenv("SNAPTRADE_SECRET_PREFIX"),
	})

	// 4. Initialize Services (Use Cases)
	assetService := asset.NewAssetService(assetRepo, categoryRepo)
	dashboardService := dashboard.NewDashboardService(assetRepo, categoryRepo)
	linkService := linking.NewLinkService(snaptradeClient)
	importService := importer.NewImportService(snaptradeClient, assetRepo, categoryRepo)

	// Initialize Category Seeder and run it
	categorySeeder := seeder.NewCategorySeeder(categoryRepo)
	ctx := context.Background()
	if err := categorySeeder.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed asset categories: %v", err)
	}
	log.Println("Asset categories seeded successfully")

	// 5. Start HTTP Server
	apiToken := envOr("API_TOKEN", defaultAPIToken)
	addr := envOr("LISTEN_ADDR", defaultAddr)

	auth := rest.GatewayAuthenticator{APIToken: apiToken}
	server := rest.NewServer(auth, importService, linkService, assetService, dashboardService, categoryRepo)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(httpServer)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
