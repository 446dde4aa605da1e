package repository

import (
	"context"

	"foodback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository defines data access for Company (empresa) principals
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	GetByEmail(ctx context.Context, email string) (*model.Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*model.Company, error)
	ListPending(ctx context.Context, page, limit int) ([]model.Company, int64, error)
	CountPending(ctx context.Context) (int64, error)
	Update(ctx context.Context, company *model.Company) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) GetByEmail(ctx context.Context, email string) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).First(&company, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) GetByCNPJ(ctx context.Context, cnpj string) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).First(&company, "cnpj = ?", cnpj).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) ListPending(ctx context.Context, page, limit int) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Company{}).Where("is_approved = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("is_approved = ?", false).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

func (r *companyRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Company{}).Where("is_approved = ?", false).Count(&total).Error
	return total, err
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Save(company).Error
}
