package main

import (
	"context"
	"log"
	"os"

	"foodback/internal/database"
	"foodback/internal/repository"
	"foodback/internal/service"

	"github.com/joho/godotenv"
)

// Seeds the initial administrator. Admins never self-register through the
// public API; this is the only way one comes into existence.
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	name := os.Getenv("ADMIN_NAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if name == "" {
		name = "Administrador"
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "foodback"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	authService := service.NewAuthService(
		repository.NewAdminRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
	)

	admin, err := authService.EnsureAdmin(context.Background(), name, email, password)
	if err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}

	log.Printf("Administrator created: %s <%s>", admin.Name, admin.Email)
}
