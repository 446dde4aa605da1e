package service

import (
	"context"
	"errors"
	"time"

	"foodback/internal/apperr"
	"foodback/internal/authz"
	"foodback/internal/model"
	"foodback/internal/repository"
	ws "foodback/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type CreateDonationRequest struct {
	Titulo              string           `json:"titulo" binding:"required"`
	Descricao           string           `json:"descricao"`
	TipoAlimento        string           `json:"tipo_alimento" binding:"required"`
	Quantidade          string           `json:"quantidade" binding:"required"`
	PesoEstimadoKg      *decimal.Decimal `json:"peso_estimado_kg"`
	DataDisponibilidade string           `json:"data_disponibilidade" binding:"required"`
}

type UpdateDonationRequest struct {
	Titulo              string           `json:"titulo"`
	Descricao           *string          `json:"descricao"`
	TipoAlimento        string           `json:"tipo_alimento"`
	Quantidade          string           `json:"quantidade"`
	PesoEstimadoKg      *decimal.Decimal `json:"peso_estimado_kg"`
	DataDisponibilidade string           `json:"data_disponibilidade"`
}

// DonationResponse is the wire representation of a doacao
type DonationResponse struct {
	ID                  uuid.UUID        `json:"id_doacao"`
	Titulo              string           `json:"titulo"`
	Descricao           string           `json:"descricao"`
	TipoAlimento        string           `json:"tipo_alimento"`
	Quantidade          string           `json:"quantidade"`
	PesoEstimadoKg      *decimal.Decimal `json:"peso_estimado_kg,omitempty"`
	DataDisponibilidade string           `json:"data_disponibilidade"`
	Status              string           `json:"status"`
	DataCriacao         string           `json:"data_criacao"`
	IDEmpresa           uuid.UUID        `json:"id_empresa"`
	Empresa             string           `json:"empresa,omitempty"`
	IDOngRecebedora     *uuid.UUID       `json:"id_ong_recebedora"`
	IDSolicitacao       *uuid.UUID       `json:"id_solicitacao_vinculada"`
}

// DonationService owns the donation lifecycle: create, edit and delete while
// available, plus the two listing views.
type DonationService interface {
	Create(ctx context.Context, companyID uuid.UUID, req CreateDonationRequest) (*DonationResponse, error)
	Update(ctx context.Context, companyID, donationID uuid.UUID, req UpdateDonationRequest) (*DonationResponse, error)
	Delete(ctx context.Context, companyID, donationID uuid.UUID) error
	ListMine(ctx context.Context, companyID uuid.UUID) ([]DonationResponse, error)
	ListAvailable(ctx context.Context, callerID uuid.UUID, callerKind string) ([]DonationResponse, error)
}

type donationService struct {
	donationRepo repository.DonationRepository
	companyRepo  repository.CompanyRepository
	ngoRepo      repository.NGORepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	companyRepo repository.CompanyRepository,
	ngoRepo repository.NGORepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		companyRepo:  companyRepo,
		ngoRepo:      ngoRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

func toDonationResponse(d *model.Donation) *DonationResponse {
	return &DonationResponse{
		ID:                  d.ID,
		Titulo:              d.Title,
		Descricao:           d.Description,
		TipoAlimento:        d.FoodType,
		Quantidade:          d.Quantity,
		PesoEstimadoKg:      d.EstimatedWeight,
		DataDisponibilidade: d.AvailabilityDate.Format(dateLayout),
		Status:              d.Status,
		DataCriacao:         d.CreatedAt.Format(time.RFC3339),
		IDEmpresa:           d.CompanyID,
		Empresa:             d.Company.Name,
		IDOngRecebedora:     d.ReceiverNGOID,
		IDSolicitacao:       d.RequestID,
	}
}

func (s *donationService) publish(event string, d *model.Donation) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(event, toDonationResponse(d))
}

func (s *donationService) companyPrincipal(ctx context.Context, companyID uuid.UUID) (*model.Company, authz.Principal, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authz.Principal{}, apperr.Authorization("acesso negado")
	} else if err != nil {
		return nil, authz.Principal{}, apperr.Persistence(err)
	}
	return company, authz.Principal{Kind: model.KindCompany, Approved: company.IsApproved}, nil
}

// Create posts a new donation in state disponivel, owned by the calling company.
func (s *donationService) Create(ctx context.Context, companyID uuid.UUID, req CreateDonationRequest) (*DonationResponse, error) {
	company, principal, err := s.companyPrincipal(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, authz.OpCreateDonation); err != nil {
		return nil, err
	}

	availableAt, err := time.Parse(dateLayout, req.DataDisponibilidade)
	if err != nil {
		return nil, apperr.Validation("Formato de data inválido. Use YYYY-MM-DD.")
	}

	donation := &model.Donation{
		Title:            req.Titulo,
		Description:      req.Descricao,
		FoodType:         req.TipoAlimento,
		Quantity:         req.Quantidade,
		EstimatedWeight:  req.PesoEstimadoKg,
		AvailabilityDate: availableAt,
		Status:           model.DonationAvailable,
		CompanyID:        company.ID,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, apperr.Persistence(err)
	}
	donation.Company = *company

	s.publish(ws.EventDonationCreated, donation)
	return toDonationResponse(donation), nil
}

// ownedAvailable loads a donation for mutation. A missing donation and one
// owned by someone else answer identically, concealing existence.
func (s *donationService) ownedAvailable(ctx context.Context, companyID, donationID uuid.UUID) (*model.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, donationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Doação não encontrada ou acesso negado.")
	} else if err != nil {
		return nil, apperr.Persistence(err)
	}
	if donation.CompanyID != companyID {
		return nil, apperr.NotFound("Doação não encontrada ou acesso negado.")
	}
	if donation.Status != model.DonationAvailable {
		return nil, apperr.StateConflict("Não é possível alterar uma doação que não está 'disponivel'.")
	}
	return donation, nil
}

// Update partially replaces donation fields while the donation is disponivel.
func (s *donationService) Update(ctx context.Context, companyID, donationID uuid.UUID, req UpdateDonationRequest) (*DonationResponse, error) {
	_, principal, err := s.companyPrincipal(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, authz.OpUpdateDonation); err != nil {
		return nil, err
	}

	donation, err := s.ownedAvailable(ctx, companyID, donationID)
	if err != nil {
		return nil, err
	}

	if req.Titulo != "" {
		donation.Title = req.Titulo
	}
	if req.Descricao != nil {
		donation.Description = *req.Descricao
	}
	if req.TipoAlimento != "" {
		donation.FoodType = req.TipoAlimento
	}
	if req.Quantidade != "" {
		donation.Quantity = req.Quantidade
	}
	if req.PesoEstimadoKg != nil {
		donation.EstimatedWeight = req.PesoEstimadoKg
	}
	if req.DataDisponibilidade != "" {
		availableAt, err := time.Parse(dateLayout, req.DataDisponibilidade)
		if err != nil {
			return nil, apperr.Validation("Formato de data inválido. Use YYYY-MM-DD.")
		}
		donation.AvailabilityDate = availableAt
	}

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, apperr.Persistence(err)
	}

	s.publish(ws.EventDonationUpdated, donation)
	return toDonationResponse(donation), nil
}

// Delete permanently removes an available donation owned by the caller.
func (s *donationService) Delete(ctx context.Context, companyID, donationID uuid.UUID) error {
	_, principal, err := s.companyPrincipal(ctx, companyID)
	if err != nil {
		return err
	}
	if err := authz.Require(principal, authz.OpDeleteDonation); err != nil {
		return err
	}

	donation, err := s.ownedAvailable(ctx, companyID, donationID)
	if err != nil {
		return err
	}

	if err := s.donationRepo.Delete(ctx, donation.ID); err != nil {
		return apperr.Persistence(err)
	}

	s.publish(ws.EventDonationDeleted, donation)
	return nil
}

// ListMine returns every donation owned by the calling company, any status.
func (s *donationService) ListMine(ctx context.Context, companyID uuid.UUID) ([]DonationResponse, error) {
	_, principal, err := s.companyPrincipal(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(principal, authz.OpListOwnDonations); err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	responses := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		responses = append(responses, *toDonationResponse(&donations[i]))
	}
	return responses, nil
}

// ListAvailable returns available donations, most recent first. NGOs must be
// approved; admins always pass.
func (s *donationService) ListAvailable(ctx context.Context, callerID uuid.UUID, callerKind string) ([]DonationResponse, error) {
	principal := authz.Principal{Kind: callerKind}
	if callerKind == model.KindNGO {
		ngo, err := s.ngoRepo.GetByID(ctx, callerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authorization("acesso negado")
		} else if err != nil {
			return nil, apperr.Persistence(err)
		}
		principal.Approved = ngo.IsApproved
	}
	if err := authz.Require(principal, authz.OpListAvailableDonations); err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.ListAvailable(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	responses := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		responses = append(responses, *toDonationResponse(&donations[i]))
	}
	return responses, nil
}
