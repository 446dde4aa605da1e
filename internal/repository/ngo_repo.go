package repository

import (
	"context"

	"foodback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NGORepository defines data access for NGO (ong) principals
type NGORepository interface {
	Create(ctx context.Context, ngo *model.NGO) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.NGO, error)
	GetByEmail(ctx context.Context, email string) (*model.NGO, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*model.NGO, error)
	ListPending(ctx context.Context, page, limit int) ([]model.NGO, int64, error)
	CountPending(ctx context.Context) (int64, error)
	Update(ctx context.Context, ngo *model.NGO) error
}

type ngoRepository struct {
	db *gorm.DB
}

func NewNGORepository(db *gorm.DB) NGORepository {
	return &ngoRepository{db: db}
}

func (r *ngoRepository) Create(ctx context.Context, ngo *model.NGO) error {
	return GetDB(ctx, r.db).Create(ngo).Error
}

func (r *ngoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.NGO, error) {
	var ngo model.NGO
	if err := GetDB(ctx, r.db).First(&ngo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) GetByEmail(ctx context.Context, email string) (*model.NGO, error) {
	var ngo model.NGO
	if err := GetDB(ctx, r.db).First(&ngo, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) GetByCNPJ(ctx context.Context, cnpj string) (*model.NGO, error) {
	var ngo model.NGO
	if err := GetDB(ctx, r.db).First(&ngo, "cnpj = ?", cnpj).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *ngoRepository) ListPending(ctx context.Context, page, limit int) ([]model.NGO, int64, error) {
	var ngos []model.NGO
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.NGO{}).Where("is_approved = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("is_approved = ?", false).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&ngos).Error
	if err != nil {
		return nil, 0, err
	}

	return ngos, total, nil
}

func (r *ngoRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.NGO{}).Where("is_approved = ?", false).Count(&total).Error
	return total, err
}

func (r *ngoRepository) Update(ctx context.Context, ngo *model.NGO) error {
	return GetDB(ctx, r.db).Save(ngo).Error
}
