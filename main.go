package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-site/api"
	"cafe-site/bot"
	"cafe-site/config"
	"cafe-site/db"
	"cafe-site/models"
	"cafe-site/services"
	"cafe-site/storage"
)

const sweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrate(ctx, cfg)
			return
		case "create-user":
			runCreateUser(ctx, cfg, os.Args[2:])
			return
		}
	}

	store := openStore(ctx, cfg)
	defer db.Close()

	var defaults *models.CafeData
	if cfg.Content.SeedFile != "" {
		defaults, err = services.LoadSeed(cfg.Content.SeedFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed:", err)
			os.Exit(1)
		}
	}

	content := services.NewContentService(store.Content, defaults)
	auth := services.NewAuthService(store.Users, store.Sessions, cfg.Session.TTL)

	if cfg.Telegram.AdminToken != "" {
		admin, err := bot.NewAdminBot(cfg, content)
		if err != nil {
			fmt.Fprintln(os.Stderr, "admin bot:", err)
			os.Exit(1)
		}
		go admin.Start(ctx)
		log.Println("Admin bot started.")
	}

	go sweep(ctx, auth)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewServer(content, auth, cfg.Session.AdminEmails).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("Listening on %s (storage=%s)", cfg.HTTP.Addr, cfg.Storage.Kind)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintln(os.Stderr, "http:", err)
		os.Exit(1)
	}
}

// openStore connects the configured backend. With postgres it also applies
// migrations when AUTO_MIGRATE is set.
func openStore(ctx context.Context, cfg *config.Config) *storage.Store {
	if cfg.Storage.Kind == config.StorageMemory {
		return storage.NewMemoryStore()
	}
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	if cfg.Storage.AutoMigrate {
		if err := applyMigrations(ctx, false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}
	return storage.NewPostgresStore(db.Pool)
}

func sweep(ctx context.Context, auth *services.AuthService) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.Sweep(ctx)
			if err != nil {
				log.Printf("session sweep: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("session sweep: removed %d expired sessions", n)
			}
		}
	}
}

func runMigrate(ctx context.Context, cfg *config.Config) {
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(ctx, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

// runCreateUser handles `create-user <email> [first] [last]` and prints the
// generated password once.
func runCreateUser(ctx context.Context, cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: cafe-site create-user <email> [first-name] [last-name]")
		os.Exit(2)
	}
	first, last := "Admin", "Cafe"
	if len(args) > 1 {
		first = args[1]
	}
	if len(args) > 2 {
		last = args[2]
	}

	store := openStore(ctx, cfg)
	defer db.Close()

	auth := services.NewAuthService(store.Users, store.Sessions, cfg.Session.TTL)
	res, password, err := auth.CreateUser(ctx, first, last, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "create-user:", err)
		os.Exit(1)
	}
	if !res.Success {
		fmt.Fprintln(os.Stderr, "create-user:", res.Message)
		os.Exit(1)
	}
	fmt.Printf("User %s created. Password: %s\n", res.User.Email, password)
}
