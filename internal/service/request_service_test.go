package service

import (
	"context"
	"testing"

	"foodback/internal/apperr"
	"foodback/internal/model"
	"foodback/internal/repository"

	"github.com/google/uuid"
)

func TestCreateRequestClaimsDonationAtomically(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	requestSvc := newRequestService(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	ngo := seedNGO(t, db, "ong@exemplo.com", true)
	donation := createDonation(t, donationSvc, company.ID, "Arroz 10kg")

	resp, err := requestSvc.Create(context.Background(), ngo.ID, donation.ID, CreateRequestDTO{})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.SolicitacaoID == uuid.Nil {
		t.Fatal("expected a solicitação id")
	}

	var reloaded model.Donation
	if err := db.First(&reloaded, "id = ?", donation.ID).Error; err != nil {
		t.Fatalf("failed to reload donation: %v", err)
	}
	if reloaded.Status != model.DonationRequested {
		t.Fatalf("donation must be solicitada, got %s", reloaded.Status)
	}
	if reloaded.ReceiverNGOID == nil || *reloaded.ReceiverNGOID != ngo.ID {
		t.Fatal("donation must be stamped with the receiving NGO")
	}
	if reloaded.RequestID == nil || *reloaded.RequestID != resp.SolicitacaoID {
		t.Fatal("donation must be linked to the solicitação")
	}

	var request model.DonationRequest
	if err := db.First(&request, "id = ?", resp.SolicitacaoID).Error; err != nil {
		t.Fatalf("solicitação not persisted: %v", err)
	}
	if request.Status != model.RequestPending {
		t.Fatalf("new solicitação must be pendente, got %s", request.Status)
	}
}

func TestCreateRequestSecondNGOSeesUnavailable(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	requestSvc := newRequestService(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	first := seedNGO(t, db, "primeira@exemplo.com", true)
	second := seedNGO(t, db, "segunda@exemplo.com", true)
	donation := createDonation(t, donationSvc, company.ID, "Arroz 10kg")

	if _, err := requestSvc.Create(context.Background(), first.ID, donation.ID, CreateRequestDTO{}); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	_, err := requestSvc.Create(context.Background(), second.ID, donation.ID, CreateRequestDTO{})
	if apperr.KindOf(err) != apperr.KindStateConflict {
		t.Fatalf("second claim must hit a state conflict, got %v", err)
	}

	var total int64
	db.Model(&model.DonationRequest{}).Count(&total)
	if total != 1 {
		t.Fatalf("losing claim must not persist a solicitação, found %d", total)
	}
}

func TestCreateRequestDuplicatePendingRejected(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	requestSvc := newRequestService(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	ngo := seedNGO(t, db, "ong@exemplo.com", true)
	donation := createDonation(t, donationSvc, company.ID, "Arroz 10kg")

	if _, err := requestSvc.Create(context.Background(), ngo.ID, donation.ID, CreateRequestDTO{}); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}

	// Put the donation back to disponivel while the pendente solicitação
	// remains: the same NGO claiming again must be rejected as a duplicate.
	if err := db.Model(&model.Donation{}).Where("id = ?", donation.ID).
		Update("status", model.DonationAvailable).Error; err != nil {
		t.Fatalf("failed to reset status: %v", err)
	}

	_, err := requestSvc.Create(context.Background(), ngo.ID, donation.ID, CreateRequestDTO{})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected duplicate-pending conflict, got %v", err)
	}
}

func TestCreateRequestMissingDonation(t *testing.T) {
	db := newTestDB(t)
	requestSvc := newRequestService(db)
	ngo := seedNGO(t, db, "ong@exemplo.com", true)

	_, err := requestSvc.Create(context.Background(), ngo.ID, uuid.New(), CreateRequestDTO{})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateRequestUnapprovedNGODenied(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	requestSvc := newRequestService(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	ngo := seedNGO(t, db, "ong@exemplo.com", false)
	donation := createDonation(t, donationSvc, company.ID, "Arroz 10kg")

	_, err := requestSvc.Create(context.Background(), ngo.ID, donation.ID, CreateRequestDTO{})
	if apperr.KindOf(err) != apperr.KindAuthorization {
		t.Fatalf("expected authorization denial, got %v", err)
	}

	var reloaded model.Donation
	db.First(&reloaded, "id = ?", donation.ID)
	if reloaded.Status != model.DonationAvailable {
		t.Fatal("denied claim must leave the donation untouched")
	}
}

func TestCreateRequestCarriesNeedDetails(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	requestSvc := newRequestService(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	ngo := seedNGO(t, db, "ong@exemplo.com", true)
	donation := createDonation(t, donationSvc, company.ID, "Arroz 10kg")

	resp, err := requestSvc.Create(context.Background(), ngo.ID, donation.ID, CreateRequestDTO{
		Titulo:         "Cesta básica",
		ItemNecessario: "arroz",
		DataLimite:     "2025-04-01",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var request model.DonationRequest
	if err := db.First(&request, "id = ?", resp.SolicitacaoID).Error; err != nil {
		t.Fatalf("solicitação not persisted: %v", err)
	}
	if request.Title != "Cesta básica" || request.NeededItem != "arroz" {
		t.Fatal("need details must be persisted")
	}
	if request.Deadline == nil {
		t.Fatal("deadline must be persisted")
	}
}

func TestMarkRequestedLosesWhenNotAvailable(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	repo := repository.NewDonationRepository(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	ngo := seedNGO(t, db, "ong@exemplo.com", true)
	donation := createDonation(t, donationSvc, company.ID, "Arroz 10kg")

	ctx := context.Background()
	won, err := repo.MarkRequested(ctx, donation.ID, ngo.ID, uuid.New())
	if err != nil || !won {
		t.Fatalf("first conditional update must win: won=%v err=%v", won, err)
	}

	// The donation is no longer disponivel, so a raced second update loses
	won, err = repo.MarkRequested(ctx, donation.ID, ngo.ID, uuid.New())
	if err != nil {
		t.Fatalf("conditional update errored: %v", err)
	}
	if won {
		t.Fatal("second conditional update must lose")
	}
}

func TestListMineRequests(t *testing.T) {
	db := newTestDB(t)
	donationSvc := newDonationService(db)
	requestSvc := newRequestService(db)
	company := seedCompany(t, db, "empresa@exemplo.com", true)
	ngo := seedNGO(t, db, "ong@exemplo.com", true)
	otherNGO := seedNGO(t, db, "outra@exemplo.com", true)

	first := createDonation(t, donationSvc, company.ID, "Arroz")
	second := createDonation(t, donationSvc, company.ID, "Feijão")

	if _, err := requestSvc.Create(context.Background(), ngo.ID, first.ID, CreateRequestDTO{}); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := requestSvc.Create(context.Background(), otherNGO.ID, second.ID, CreateRequestDTO{}); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	mine, err := requestSvc.ListMine(context.Background(), ngo.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 own solicitação, got %d", len(mine))
	}
	if mine[0].IDDoacao != first.ID {
		t.Fatal("listed solicitação must reference the claimed donation")
	}
}
