package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodback/internal/apperr"
	"foodback/internal/authz"
	"foodback/internal/model"
	"foodback/internal/repository"
	ws "foodback/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

// CreateRequestDTO carries the optional need-announcement fields an NGO may
// attach to its claim. The body may be empty; the claim itself only needs
// the donation id from the path.
type CreateRequestDTO struct {
	Titulo               string `json:"titulo"`
	Descricao            string `json:"descricao"`
	ItemNecessario       string `json:"item_necessario"`
	QuantidadeNecessaria string `json:"quantidade_necessaria"`
	DataLimite           string `json:"data_limite"`
}

type CreateRequestResponse struct {
	Msg           string    `json:"msg"`
	SolicitacaoID uuid.UUID `json:"solicitacao_id"`
}

// RequestResponse is the wire representation of a solicitação
type RequestResponse struct {
	ID                   uuid.UUID `json:"id_solicitacao"`
	Titulo               string    `json:"titulo"`
	Descricao            string    `json:"descricao"`
	ItemNecessario       string    `json:"item_necessario"`
	QuantidadeNecessaria string    `json:"quantidade_necessaria"`
	DataLimite           *string   `json:"data_limite"`
	Status               string    `json:"status"`
	DataCriacao          string    `json:"data_criacao"`
	IDDoacao             uuid.UUID `json:"id_doacao"`
	IDOng                uuid.UUID `json:"id_ong"`
}

// RequestService owns solicitação creation: the one three-way mutation in
// the system (create claim, flip donation status, link ids) applied as a
// single transaction.
type RequestService interface {
	Create(ctx context.Context, ngoID, donationID uuid.UUID, req CreateRequestDTO) (*CreateRequestResponse, error)
	ListMine(ctx context.Context, ngoID uuid.UUID) ([]RequestResponse, error)
}

type requestService struct {
	requestRepo  repository.RequestRepository
	donationRepo repository.DonationRepository
	ngoRepo      repository.NGORepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	donationRepo repository.DonationRepository,
	ngoRepo repository.NGORepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		donationRepo: donationRepo,
		ngoRepo:      ngoRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

func toRequestResponse(r *model.DonationRequest) *RequestResponse {
	var deadline *string
	if r.Deadline != nil {
		d := r.Deadline.Format(dateLayout)
		deadline = &d
	}
	return &RequestResponse{
		ID:                   r.ID,
		Titulo:               r.Title,
		Descricao:            r.Description,
		ItemNecessario:       r.NeededItem,
		QuantidadeNecessaria: r.NeededQuantity,
		DataLimite:           deadline,
		Status:               r.Status,
		DataCriacao:          r.CreatedAt.Format(time.RFC3339),
		IDDoacao:             r.DonationID,
		IDOng:                r.NGOID,
	}
}

// Create claims an available donation for the calling NGO. Inside one
// transaction it creates the pendente solicitação, flips the donation to
// solicitada and stamps the NGO and solicitação ids on it; the conditional
// status update guarantees that two concurrent claims cannot both succeed,
// and a lost race rolls the solicitação back out.
func (s *requestService) Create(ctx context.Context, ngoID, donationID uuid.UUID, req CreateRequestDTO) (*CreateRequestResponse, error) {
	ngo, err := s.ngoRepo.GetByID(ctx, ngoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authorization("acesso negado")
	} else if err != nil {
		return nil, apperr.Persistence(err)
	}
	if err := authz.Require(authz.Principal{Kind: model.KindNGO, Approved: ngo.IsApproved}, authz.OpCreateRequest); err != nil {
		return nil, err
	}

	var deadline *time.Time
	if req.DataLimite != "" {
		parsed, err := time.Parse(dateLayout, req.DataLimite)
		if err != nil {
			return nil, apperr.Validation("Formato de data inválido. Use YYYY-MM-DD.")
		}
		deadline = &parsed
	}

	request := &model.DonationRequest{
		Title:          req.Titulo,
		Description:    req.Descricao,
		NeededItem:     req.ItemNecessario,
		NeededQuantity: req.QuantidadeNecessaria,
		Deadline:       deadline,
		Status:         model.RequestPending,
		DonationID:     donationID,
		NGOID:          ngoID,
	}

	var donation *model.Donation
	txErr := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		donation, err = s.donationRepo.GetByID(txCtx, donationID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Doação não encontrada.")
		} else if err != nil {
			return apperr.Persistence(err)
		}
		if donation.Status != model.DonationAvailable {
			return apperr.StateConflict("Esta doação não está mais disponível para solicitação.")
		}

		exists, err := s.requestRepo.PendingExists(txCtx, donationID, ngoID)
		if err != nil {
			return apperr.Persistence(err)
		}
		if exists {
			return apperr.Conflict("Você já possui uma solicitação pendente para esta doação.")
		}

		if err := s.requestRepo.Create(txCtx, request); err != nil {
			return apperr.Persistence(err)
		}

		won, err := s.donationRepo.MarkRequested(txCtx, donationID, ngoID, request.ID)
		if err != nil {
			return apperr.Persistence(err)
		}
		if !won {
			// A concurrent claim got there first; roll everything back.
			return apperr.StateConflict("Esta doação não está mais disponível para solicitação.")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.hub != nil {
		donation.Status = model.DonationRequested
		donation.ReceiverNGOID = &ngoID
		donation.RequestID = &request.ID
		s.hub.Publish(ws.EventDonationRequested, toDonationResponse(donation))
	}

	return &CreateRequestResponse{
		Msg:           fmt.Sprintf("Solicitação enviada com sucesso para a Doação ID %s.", donationID),
		SolicitacaoID: request.ID,
	}, nil
}

// ListMine returns the calling NGO's solicitações, most recent first.
func (s *requestService) ListMine(ctx context.Context, ngoID uuid.UUID) ([]RequestResponse, error) {
	ngo, err := s.ngoRepo.GetByID(ctx, ngoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authorization("acesso negado")
	} else if err != nil {
		return nil, apperr.Persistence(err)
	}
	if err := authz.Require(authz.Principal{Kind: model.KindNGO, Approved: ngo.IsApproved}, authz.OpListOwnRequests); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.ListByNGO(ctx, ngoID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	responses := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *toRequestResponse(&requests[i]))
	}
	return responses, nil
}
