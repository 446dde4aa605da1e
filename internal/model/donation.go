package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation status enum constants. The lifecycle only advances:
// disponivel -> solicitada -> concluida. Nothing reverts a solicitada
// donation and no route reaches concluida yet.
const (
	DonationAvailable = "disponivel"
	DonationRequested = "solicitada"
	DonationConcluded = "concluida"
)

// Donation is a surplus-food offer posted by a Company. The receiving NGO
// and the fulfilling request are linked only once a solicitação claims it.
type Donation struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id_doacao"`
	Title            string           `gorm:"type:varchar(255);not null" json:"titulo"`
	Description      string           `gorm:"type:text" json:"descricao"`
	FoodType         string           `gorm:"type:varchar(100);not null" json:"tipo_alimento"`
	Quantity         string           `gorm:"type:varchar(50);not null" json:"quantidade"`
	EstimatedWeight  *decimal.Decimal `gorm:"type:numeric(10,3)" json:"peso_estimado_kg,omitempty"`
	AvailabilityDate time.Time        `gorm:"type:date;not null" json:"-"`
	Status           string           `gorm:"type:varchar(50);not null;default:'disponivel';index" json:"status"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"data_criacao"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"data_atualizacao"`

	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"id_empresa"`
	Company   Company   `gorm:"foreignKey:CompanyID" json:"-"`

	// Set together with Status = solicitada, inside the same transaction.
	ReceiverNGOID *uuid.UUID `gorm:"type:uuid;index" json:"id_ong_recebedora"`
	ReceiverNGO   *NGO       `gorm:"foreignKey:ReceiverNGOID" json:"-"`
	RequestID     *uuid.UUID `gorm:"type:uuid" json:"id_solicitacao"`
}

func (Donation) TableName() string { return "doacao" }

func (d *Donation) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
