package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContributionScheme is a recurring collection a temple runs (annadanam fund,
// renovation fund, monthly seva).
type ContributionScheme struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TempleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"temple_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Frequency   string          `gorm:"type:varchar(20);not null" json:"frequency"` // monthly, quarterly, yearly, one-time
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (s *ContributionScheme) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Contribution is one payment made by a devotee under a scheme.
type Contribution struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	SchemeID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"scheme_id"`
	Scheme    ContributionScheme `gorm:"foreignKey:SchemeID" json:"-"`
	TempleID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"temple_id"`
	DevoteeID *uuid.UUID         `gorm:"type:uuid;index" json:"devotee_id"`
	PayerName string             `gorm:"type:varchar(255);not null" json:"payer_name"`
	Amount    decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaidAt    time.Time          `gorm:"not null;index" json:"paid_at"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Contribution) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
