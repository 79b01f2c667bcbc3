package main

import (
	"errors"
	"flag"
	"log"

	"go-smart-inventory/internal/config"
	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/repository"
	"go-smart-inventory/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Bootstraps (or resets) an admin account. Registration via the API
// defaults to the staff role, so the first admin has to come from here.
func main() {
	email := flag.String("email", "admin@example.com", "admin email")
	username := flag.String("username", "Administrator", "admin display name")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("missing -password")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByEmail(*email)
	switch {
	case err == nil:
		// Existing account: promote and reset password
		user.Role = model.RoleAdmin
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := userRepo.Update(user); err != nil {
			log.Fatalf("Failed to update admin user: %v", err)
		}
		log.Printf("Updated admin user %s", *email)

	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			Username: *username,
			Email:    *email,
			Role:     model.RoleAdmin,
		}
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Created admin user %s", *email)

	default:
		log.Fatalf("Lookup failed: %v", err)
	}
}
