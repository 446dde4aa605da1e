package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Solicitação status enum constants. Only pendente is assigned today;
// atendida and cancelada are reserved for a future completion flow.
const (
	RequestPending   = "pendente"
	RequestFulfilled = "atendida"
	RequestCancelled = "cancelada"
)

// DonationRequest is an NGO's claim (solicitação) against an available
// Donation. The descriptive fields are optional need-announcement data
// supplied by the NGO alongside the claim.
type DonationRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id_solicitacao"`
	Title          string     `gorm:"type:varchar(255)" json:"titulo"`
	Description    string     `gorm:"type:text" json:"descricao"`
	NeededItem     string     `gorm:"type:varchar(100)" json:"item_necessario"`
	NeededQuantity string     `gorm:"type:varchar(50)" json:"quantidade_necessaria"`
	Deadline       *time.Time `gorm:"type:date" json:"-"`
	Status         string     `gorm:"type:varchar(50);not null;default:'pendente';index" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"data_criacao"`

	DonationID uuid.UUID `gorm:"type:uuid;not null;index" json:"id_doacao"`
	Donation   Donation  `gorm:"foreignKey:DonationID" json:"-"`
	NGOID      uuid.UUID `gorm:"type:uuid;not null;index" json:"id_ong"`
	NGO        NGO       `gorm:"foreignKey:NGOID" json:"-"`
}

func (DonationRequest) TableName() string { return "solicitacao" }

func (r *DonationRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
