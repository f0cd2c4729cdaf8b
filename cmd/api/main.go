package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tallio.org/internal/access"
	"tallio.org/internal/httpapi"
	"tallio.org/internal/migrate"
	"tallio.org/internal/obs"
	"tallio.org/internal/store/memory"
	pgstore "tallio.org/internal/store/pg"
)

var version = "0.3.1"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("TALLIO_COMMIT"))

	addr := os.Getenv("TALLIO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ctx := context.Background()

	// Role definitions live in Postgres when a DSN is configured; the
	// in-memory store keeps development runs self-contained.
	var (
		db    *sql.DB
		store access.RoleStore
	)
	if dsn := os.Getenv("TALLIO_PG_DSN"); dsn != "" {
		var err error
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := migrate.New(db).Up(ctx); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		store = pgstore.New(db)
	} else {
		store = memory.New()
	}

	if err := access.Seed(ctx, store); err != nil {
		log.Fatalf("seed roles: %v", err)
	}

	api := httpapi.New(store, httpapi.ReadyProbe{DB: db}, version)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting tallio-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
