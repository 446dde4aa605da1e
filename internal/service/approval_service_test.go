package service

import (
	"context"
	"testing"

	"foodback/internal/apperr"
	"foodback/internal/model"
	"foodback/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestApproveCompany(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
	)
	company := seedCompany(t, db, "empresa@exemplo.com", false)

	_, err := svc.ApproveUser(context.Background(), model.KindAdmin, ApproveUserRequest{
		UserID: company.ID.String(), UserType: model.KindCompany,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	var reloaded model.Company
	db.First(&reloaded, "id = ?", company.ID)
	if !reloaded.IsApproved {
		t.Fatal("company must be approved")
	}

	// Re-approving is a harmless no-op
	_, err = svc.ApproveUser(context.Background(), model.KindAdmin, ApproveUserRequest{
		UserID: company.ID.String(), UserType: model.KindCompany,
	})
	if err != nil {
		t.Fatalf("re-approve must succeed, got %v", err)
	}
}

func TestApproveRejectsNonAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
	)
	company := seedCompany(t, db, "empresa@exemplo.com", false)

	_, err := svc.ApproveUser(context.Background(), model.KindCompany, ApproveUserRequest{
		UserID: company.ID.String(), UserType: model.KindCompany,
	})
	if apperr.KindOf(err) != apperr.KindAuthorization {
		t.Fatalf("expected authorization denial, got %v", err)
	}
}

func TestApproveBadUserType(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
	)

	_, err := svc.ApproveUser(context.Background(), model.KindAdmin, ApproveUserRequest{
		UserID: uuid.NewString(), UserType: "padaria",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApproveMissingTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
	)

	_, err := svc.ApproveUser(context.Background(), model.KindAdmin, ApproveUserRequest{
		UserID: uuid.NewString(), UserType: model.KindNGO,
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListPendingGroupsBothKinds(t *testing.T) {
	db := newTestDB(t)
	svc := NewApprovalService(
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
		repository.NewTransactionManager(db),
	)
	seedCompany(t, db, "pendente@exemplo.com", false)
	seedCompany(t, db, "aprovada@exemplo.com", true)
	seedNGO(t, db, "ong@exemplo.com", false)

	pending, err := svc.ListPending(context.Background(), model.KindAdmin, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if pending.TotalEmpresas != 1 || pending.TotalOngs != 1 {
		t.Fatalf("expected 1 pending of each kind, got %d/%d", pending.TotalEmpresas, pending.TotalOngs)
	}
}

func TestDashboardStatistics(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	statsSvc := NewStatisticsService(
		repository.NewDonationRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
	)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	seedNGO(t, db, "ong@exemplo.com", false)

	weight := decimal.RequireFromString("12.5")
	if _, err := donationSvc.Create(context.Background(), company.ID, CreateDonationRequest{
		Titulo: "Arroz", TipoAlimento: "graos", Quantidade: "10kg",
		PesoEstimadoKg: &weight, DataDisponibilidade: "2025-03-01",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	requested := createDonation(t, donationSvc, company.ID, "Feijão")
	if err := db.Model(&model.Donation{}).Where("id = ?", requested.ID).
		Update("status", model.DonationRequested).Error; err != nil {
		t.Fatalf("failed to flip status: %v", err)
	}

	stats, err := statsSvc.GetDashboard(context.Background(), model.KindAdmin)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if stats.DoacoesDisponiveis != 1 || stats.DoacoesSolicitadas != 1 {
		t.Fatalf("unexpected status counts: %+v", stats)
	}
	if stats.OngsPendentes != 1 {
		t.Fatalf("expected 1 pending ngo, got %d", stats.OngsPendentes)
	}
	if !stats.PesoDisponivelTotal.Equal(weight) {
		t.Fatalf("expected available weight 12.5, got %s", stats.PesoDisponivelTotal)
	}
}

func TestStatisticsRejectsNonAdmin(t *testing.T) {
	db := newTestDB(t)
	statsSvc := NewStatisticsService(
		repository.NewDonationRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewNGORepository(db),
	)

	_, err := statsSvc.GetDashboard(context.Background(), model.KindNGO)
	if apperr.KindOf(err) != apperr.KindAuthorization {
		t.Fatalf("expected authorization denial, got %v", err)
	}
}
