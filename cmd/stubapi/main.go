package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/neo-admin/app"
	"github.com/joefazee/neo-admin/app/stub"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/models"
)

var version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zl := logger.NewZeroLogger(os.Stderr, logger.ParseLevel(cfg.Log.Level), logger.Fields{"app": "stubapi"})
	gin.SetMode(gin.ReleaseMode)

	server := stub.New(
		stub.WithToken(cfg.Stub.Token),
		stub.WithLogger(zl),
		stub.WithVersion(version),
	)
	if err := server.AddUser(cfg.Stub.AdminID, "admin@example.com", cfg.Stub.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}
	if cfg.Stub.Seed {
		if err := server.Seed(sampleCategories()...); err != nil {
			log.Fatal("Failed to seed categories:", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Error(err, logger.Fields{"op": "shutdown"})
		}
	}()

	zl.Info("starting stub admin API", logger.Fields{"addr": cfg.Stub.Addr, "base_path": stub.DefaultBasePath})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}
}

func sampleCategories() []models.Category {
	return []models.Category{
		{Name: "Phones", Details: "Smart phones and accessories", Icon: models.RemoteMedia("https://cdn.example.com/icons/phones.png", "phones.png")},
		{Name: "Laptops", Details: "Notebooks, ultrabooks and workstations"},
		{Name: "Books", Details: "Paperbacks, hardcovers and e-books"},
		{Name: "Garden", Details: "Outdoor tools and furniture"},
		{Name: "Toys", Details: "Games and toys for every age"},
		{Name: "Groceries", Details: "Fresh food and pantry staples"},
	}
}
