package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Principal kind discriminants carried in tokens and used for authorization dispatch
const (
	KindAdmin   = "admin"
	KindCompany = "empresa"
	KindNGO     = "ong"
)

// Admin is the platform administrator. Seeded out-of-band via cmd/seed,
// never self-registered through the public API.
type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Name      string    `gorm:"type:varchar(255)" json:"nome"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"data_cadastro"`
}

func (Admin) TableName() string { return "admin" }

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Company represents an empresa posting surplus-food donations.
// IsApproved gates every lifecycle-changing action and is flipped only by an Admin.
type Company struct {
	ID         uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	CNPJ       *string   `gorm:"type:varchar(20);uniqueIndex" json:"cnpj"`
	Name       string    `gorm:"type:varchar(255);not null" json:"nome_empresa"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone      string    `gorm:"type:varchar(50)" json:"telefone"`
	Address    string    `gorm:"type:varchar(255)" json:"endereco"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"data_cadastro"`
}

func (Company) TableName() string { return "empresa" }

func (c *Company) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NGO represents an ONG claiming donations. Same shape as Company but a
// distinct namespace: an NGO and a Company may share an email.
type NGO struct {
	ID         uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	CNPJ       *string   `gorm:"type:varchar(20);uniqueIndex" json:"cnpj"`
	Name       string    `gorm:"type:varchar(255);not null" json:"nome_ong"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone      string    `gorm:"type:varchar(50)" json:"telefone"`
	Address    string    `gorm:"type:varchar(255)" json:"endereco"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"data_cadastro"`
}

func (NGO) TableName() string { return "ong" }

func (n *NGO) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
