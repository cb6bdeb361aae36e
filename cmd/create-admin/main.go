package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/cisclab/registrar-backend/internal/config"
	"github.com/cisclab/registrar-backend/internal/logger"
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/repository"
	"github.com/cisclab/registrar-backend/internal/service"
	"github.com/cisclab/registrar-backend/internal/store"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// ─── Open Admin Store ──────────────────────────────────────────────
	adminStore := store.New[model.Admin](cfg.AdminsPath(), "admins")
	if err := adminStore.EnsureExists(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize admin data file")
	}

	adminRepo := repository.NewAdminRepository(adminStore)
	authService := service.NewAuthService(cfg, adminRepo)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println()
	password := strings.TrimSpace(string(bytePassword))
	if password == "" {
		fmt.Println("Error: Password is required")
		return
	}

	// ─── Create Admin ──────────────────────────────────────────────────
	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin, err := adminRepo.Create(name, email, hash)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("Admin created: %s <%s> (ID: %d)\n", admin.Name, admin.Email, admin.ID)
}
