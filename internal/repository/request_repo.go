package repository

import (
	"context"

	"foodback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository defines data access for DonationRequest (solicitacao) entities
type RequestRepository interface {
	Create(ctx context.Context, request *model.DonationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error)
	ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]model.DonationRequest, error)
	PendingExists(ctx context.Context, donationID, ngoID uuid.UUID) (bool, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.DonationRequest) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	var request model.DonationRequest
	if err := GetDB(ctx, r.db).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]model.DonationRequest, error) {
	var requests []model.DonationRequest
	err := GetDB(ctx, r.db).
		Where("ngo_id = ?", ngoID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// PendingExists reports whether the NGO already holds a pendente solicitação
// for the donation. At most one may exist per (donation, NGO) pair.
func (r *requestRepository) PendingExists(ctx context.Context, donationID, ngoID uuid.UUID) (bool, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.DonationRequest{}).
		Where("donation_id = ? AND ngo_id = ? AND status = ?", donationID, ngoID, model.RequestPending).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}
