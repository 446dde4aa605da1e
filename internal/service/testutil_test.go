package service

import (
	"context"
	"fmt"
	"testing"

	"foodback/internal/model"
	"foodback/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Admin{},
		&model.Company{},
		&model.NGO{},
		&model.Donation{},
		&model.DonationRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hashed)
}

func seedCompany(t *testing.T, db *gorm.DB, email string, approved bool) *model.Company {
	t.Helper()
	company := &model.Company{
		Name:       "Empresa Teste",
		Email:      email,
		Password:   hashPassword(t, "senha123"),
		IsApproved: approved,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
	return company
}

func seedNGO(t *testing.T, db *gorm.DB, email string, approved bool) *model.NGO {
	t.Helper()
	ngo := &model.NGO{
		Name:       "ONG Teste",
		Email:      email,
		Password:   hashPassword(t, "senha123"),
		IsApproved: approved,
	}
	if err := db.Create(ngo).Error; err != nil {
		t.Fatalf("failed to seed ngo: %v", err)
	}
	return ngo
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) *model.Admin {
	t.Helper()
	admin := &model.Admin{
		Name:     "Administrador",
		Email:    email,
		Password: hashPassword(t, "senha123"),
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return admin
}

func newDonationService(db *gorm.DB) DonationService {
	return NewDonationService(
		repository.NewDonationRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func newRequestService(db *gorm.DB) RequestService {
	return NewRequestService(
		repository.NewRequestRepository(db),
		repository.NewDonationRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func newAuthServiceForTest(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewAdminRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
	)
}

func createDonation(t *testing.T, svc DonationService, companyID uuid.UUID, title string) *DonationResponse {
	t.Helper()
	donation, err := svc.Create(context.Background(), companyID, CreateDonationRequest{
		Titulo:              title,
		TipoAlimento:        "graos",
		Quantidade:          "10kg",
		DataDisponibilidade: "2025-03-01",
	})
	if err != nil {
		t.Fatalf("failed to create donation: %v", err)
	}
	return donation
}
