package service

import (
	"context"

	"foodback/internal/apperr"
	"foodback/internal/authz"
	"foodback/internal/model"
	"foodback/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardStats summarizes platform state for the admin dashboard
type DashboardStats struct {
	DoacoesDisponiveis  int64           `json:"doacoes_disponiveis"`
	DoacoesSolicitadas  int64           `json:"doacoes_solicitadas"`
	DoacoesConcluidas   int64           `json:"doacoes_concluidas"`
	EmpresasPendentes   int64           `json:"empresas_pendentes"`
	OngsPendentes       int64           `json:"ongs_pendentes"`
	PesoDisponivelTotal decimal.Decimal `json:"peso_disponivel_total_kg"`
}

type StatisticsService interface {
	GetDashboard(ctx context.Context, callerKind string) (*DashboardStats, error)
}

type statisticsService struct {
	donationRepo repository.DonationRepository
	companyRepo  repository.CompanyRepository
	ngoRepo      repository.NGORepository
}

func NewStatisticsService(
	donationRepo repository.DonationRepository,
	companyRepo repository.CompanyRepository,
	ngoRepo repository.NGORepository,
) StatisticsService {
	return &statisticsService{
		donationRepo: donationRepo,
		companyRepo:  companyRepo,
		ngoRepo:      ngoRepo,
	}
}

func (s *statisticsService) GetDashboard(ctx context.Context, callerKind string) (*DashboardStats, error) {
	if err := authz.Require(authz.Principal{Kind: callerKind, Approved: true}, authz.OpViewStatistics); err != nil {
		return nil, err
	}

	counts, err := s.donationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	pendingCompanies, err := s.companyRepo.CountPending(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	pendingNGOs, err := s.ngoRepo.CountPending(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	weightText, err := s.donationRepo.SumAvailableWeight(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	weight, err := decimal.NewFromString(weightText)
	if err != nil {
		weight = decimal.Zero
	}

	return &DashboardStats{
		DoacoesDisponiveis:  counts[model.DonationAvailable],
		DoacoesSolicitadas:  counts[model.DonationRequested],
		DoacoesConcluidas:   counts[model.DonationConcluded],
		EmpresasPendentes:   pendingCompanies,
		OngsPendentes:       pendingNGOs,
		PesoDisponivelTotal: weight,
	}, nil
}
