package service

import (
	"context"
	"errors"
	"fmt"

	"foodback/internal/apperr"
	"foodback/internal/authz"
	"foodback/internal/model"
	"foodback/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type ApproveUserRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
}

// PendingRegistrations groups unapproved principals for the admin dashboard
type PendingRegistrations struct {
	Empresas      []model.Company `json:"empresas"`
	TotalEmpresas int64           `json:"total_empresas"`
	Ongs          []model.NGO     `json:"ongs"`
	TotalOngs     int64           `json:"total_ongs"`
}

// ApprovalService owns the admin-only registration approval flow
type ApprovalService interface {
	ApproveUser(ctx context.Context, callerKind string, req ApproveUserRequest) (string, error)
	ListPending(ctx context.Context, callerKind string, page, limit int) (*PendingRegistrations, error)
}

type approvalService struct {
	companyRepo repository.CompanyRepository
	ngoRepo     repository.NGORepository
	txManager   repository.TransactionManager
}

func NewApprovalService(
	companyRepo repository.CompanyRepository,
	ngoRepo repository.NGORepository,
	txManager repository.TransactionManager,
) ApprovalService {
	return &approvalService{
		companyRepo: companyRepo,
		ngoRepo:     ngoRepo,
		txManager:   txManager,
	}
}

// ApproveUser flips the target principal's approval flag. Re-approving an
// already-approved principal is a harmless no-op returning success.
func (s *approvalService) ApproveUser(ctx context.Context, callerKind string, req ApproveUserRequest) (string, error) {
	if err := authz.Require(authz.Principal{Kind: callerKind, Approved: true}, authz.OpApproveRegistration); err != nil {
		return "", err
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return "", apperr.Validation("user_id inválido")
	}

	switch req.UserType {
	case model.KindCompany:
		company, err := s.companyRepo.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Empresa não encontrada")
		} else if err != nil {
			return "", apperr.Persistence(err)
		}
		company.IsApproved = true
		if err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			return s.companyRepo.Update(txCtx, company)
		}); err != nil {
			return "", apperr.Persistence(err)
		}
		return fmt.Sprintf("Empresa ID %s aprovada com sucesso", req.UserID), nil

	case model.KindNGO:
		ngo, err := s.ngoRepo.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("ONG não encontrada")
		} else if err != nil {
			return "", apperr.Persistence(err)
		}
		ngo.IsApproved = true
		if err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			return s.ngoRepo.Update(txCtx, ngo)
		}); err != nil {
			return "", apperr.Persistence(err)
		}
		return fmt.Sprintf("ONG ID %s aprovada com sucesso", req.UserID), nil

	default:
		return "", apperr.Validation("Tipo de usuário para aprovação inválido")
	}
}

// ListPending returns the unapproved registrations of both kinds, oldest first.
func (s *approvalService) ListPending(ctx context.Context, callerKind string, page, limit int) (*PendingRegistrations, error) {
	if err := authz.Require(authz.Principal{Kind: callerKind, Approved: true}, authz.OpApproveRegistration); err != nil {
		return nil, err
	}

	companies, totalCompanies, err := s.companyRepo.ListPending(ctx, page, limit)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	ngos, totalNGOs, err := s.ngoRepo.ListPending(ctx, page, limit)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return &PendingRegistrations{
		Empresas:      companies,
		TotalEmpresas: totalCompanies,
		Ongs:          ngos,
		TotalOngs:     totalNGOs,
	}, nil
}
