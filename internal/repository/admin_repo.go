package repository

import (
	"context"

	"foodback/internal/model"

	"gorm.io/gorm"
)

// AdminRepository defines data access for Admin principals
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return GetDB(ctx, r.db).Create(admin).Error
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := GetDB(ctx, r.db).First(&admin, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Admin{}).Count(&total).Error
	return total, err
}
