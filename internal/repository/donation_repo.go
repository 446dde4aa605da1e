package repository

import (
	"context"

	"foodback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationRepository defines data access for Donation (doacao) entities
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Donation, error)
	ListAvailable(ctx context.Context) ([]model.Donation, error)
	Update(ctx context.Context, donation *model.Donation) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkRequested(ctx context.Context, donationID, ngoID, requestID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumAvailableWeight(ctx context.Context) (string, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return GetDB(ctx, r.db).Create(donation).Error
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	if err := GetDB(ctx, r.db).Preload("Company").First(&donation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Donation, error) {
	var donations []model.Donation
	err := GetDB(ctx, r.db).Preload("Company").
		Where("company_id = ?", companyID).
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) ListAvailable(ctx context.Context) ([]model.Donation, error) {
	var donations []model.Donation
	err := GetDB(ctx, r.db).Preload("Company").
		Where("status = ?", model.DonationAvailable).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) Update(ctx context.Context, donation *model.Donation) error {
	return GetDB(ctx, r.db).Save(donation).Error
}

func (r *donationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Donation{}).Error
}

// MarkRequested flips an available donation to solicitada and links the
// receiving NGO and solicitação in a single conditional UPDATE. The status
// predicate makes the read-modify-write safe under concurrency: of two
// simultaneous claims exactly one sees rows-affected == 1.
func (r *donationRepository) MarkRequested(ctx context.Context, donationID, ngoID, requestID uuid.UUID) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Donation{}).
		Where("id = ? AND status = ?", donationID, model.DonationAvailable).
		Updates(map[string]interface{}{
			"status":          model.DonationRequested,
			"receiver_ngo_id": ngoID,
			"request_id":      requestID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *donationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&model.Donation{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// SumAvailableWeight totals peso_estimado_kg over available donations.
// Returned as text so the caller can parse into a decimal without a float
// round trip.
func (r *donationRepository) SumAvailableWeight(ctx context.Context) (string, error) {
	var sum *string
	err := GetDB(ctx, r.db).Model(&model.Donation{}).
		Where("status = ?", model.DonationAvailable).
		Select("CAST(COALESCE(SUM(estimated_weight), 0) AS TEXT)").
		Scan(&sum).Error
	if err != nil {
		return "0", err
	}
	if sum == nil {
		return "0", nil
	}
	return *sum, nil
}
