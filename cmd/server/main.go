// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"conectar_backend/internal/config"
)

func main() {
	seedAdminCmd := flag.NewFlagSet("seed-admin", flag.ExitOnError)
	name := seedAdminCmd.String("name", "", "Admin display name (default SEED_ADMIN_NAME)")
	email := seedAdminCmd.String("email", "", "Admin email (default SEED_ADMIN_EMAIL)")
	password := seedAdminCmd.String("password", "", "Admin password (default SEED_ADMIN_PASSWORD)")

	if len(os.Args) > 1 && os.Args[1] == "seed-admin" {
		_ = seedAdminCmd.Parse(os.Args[2:])

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("FATAL: Failed to load configuration for seed-admin: %v", err)
		}
		if err := runSeedAdmin(cfg, *name, *email, *password); err != nil {
			log.Fatalf("FATAL: seed-admin failed: %v", err)
		}
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runSeedAdmin creates the admin account unless the email is already taken.
// Flags override the SEED_ADMIN_* settings.
func runSeedAdmin(cfg *config.Config, name, email, password string) error {
	if name == "" {
		name = cfg.SeedAdminName
	}
	if email == "" {
		email = cfg.SeedAdminEmail
	}
	if password == "" {
		password = cfg.SeedAdminPassword
	}
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required (flags or SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD)")
	}
	if len(password) < 6 {
		return fmt.Errorf("admin password must be at least 6 characters")
	}

	seeder, cleanup, err := initializeAdminSeeder(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return seeder.Seed(context.Background(), name, email, password)
}
