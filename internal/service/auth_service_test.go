package service

import (
	"context"
	"testing"

	"foodback/internal/apperr"
	"foodback/internal/model"
)

func TestRegisterCompanyAndNGOShareEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Nome: "Padaria Central", Email: "contato@exemplo.com", Senha: "senha123", Tipo: model.KindCompany,
	})
	if err != nil {
		t.Fatalf("company registration failed: %v", err)
	}

	// Same email in the NGO namespace must be accepted
	_, err = svc.Register(ctx, RegisterRequest{
		Nome: "ONG Alimenta", Email: "contato@exemplo.com", Senha: "senha123", Tipo: model.KindNGO,
	})
	if err != nil {
		t.Fatalf("ngo registration with same email failed: %v", err)
	}

	var company model.Company
	if err := db.First(&company, "email = ?", "contato@exemplo.com").Error; err != nil {
		t.Fatalf("company not persisted: %v", err)
	}
	if company.IsApproved {
		t.Fatal("new registrations must start unapproved")
	}
}

func TestRegisterDuplicateEmailSameKindRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	ctx := context.Background()

	req := RegisterRequest{Nome: "Empresa A", Email: "dup@exemplo.com", Senha: "senha123", Tipo: model.KindCompany}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	req.Nome = "Empresa B"
	_, err := svc.Register(ctx, req)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterDuplicateCNPJRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	ctx := context.Background()

	first := RegisterRequest{Nome: "Empresa A", Email: "a@exemplo.com", Senha: "senha123", Tipo: model.KindCompany, CNPJ: "12345678000199"}
	if _, err := svc.Register(ctx, first); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	second := RegisterRequest{Nome: "Empresa B", Email: "b@exemplo.com", Senha: "senha123", Tipo: model.KindCompany, CNPJ: "12345678000199"}
	_, err := svc.Register(ctx, second)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict on duplicate cnpj, got %v", err)
	}
}

func TestLoginApprovedCompany(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	seedCompany(t, db, "empresa@exemplo.com", true)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "empresa@exemplo.com", Senha: "senha123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.UserType != model.KindCompany {
		t.Fatalf("expected user_type empresa, got %s", resp.UserType)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
}

func TestLoginUnapprovedNGOGetsPendingRejection(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	seedNGO(t, db, "ong@exemplo.com", false)

	// Correct credentials, not yet approved: authorization rejection, not 401
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ong@exemplo.com", Senha: "senha123"})
	if apperr.KindOf(err) != apperr.KindAuthorization {
		t.Fatalf("expected authorization (pending approval), got %v", err)
	}
}

func TestLoginBadPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	seedNGO(t, db, "ong@exemplo.com", true)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ong@exemplo.com", Senha: "errada"})
	if apperr.KindOf(err) != apperr.KindAuthentication {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ninguem@exemplo.com", Senha: "senha123"})
	if apperr.KindOf(err) != apperr.KindAuthentication {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestLoginProbesAdminFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	seedAdmin(t, db, "chefe@exemplo.com")
	// Unapproved company under the same email: the admin match must win,
	// so login succeeds instead of returning pending-approval.
	seedCompany(t, db, "chefe@exemplo.com", false)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "chefe@exemplo.com", Senha: "senha123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.UserType != model.KindAdmin {
		t.Fatalf("expected admin match to win, got %s", resp.UserType)
	}
}

func TestEnsureAdminOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)
	ctx := context.Background()

	admin, err := svc.EnsureAdmin(ctx, "Admin", "admin@exemplo.com", "senha123")
	if err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if admin.ID.String() == "" {
		t.Fatal("expected admin id")
	}

	_, err = svc.EnsureAdmin(ctx, "Outro", "outro@exemplo.com", "senha123")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict when an admin exists, got %v", err)
	}
}
