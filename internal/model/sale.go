package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale records a counter sale (prasadam, books, lamps) at a temple shop.
type Sale struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TempleID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"temple_id"`
	ItemName  string          `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	SoldAt    time.Time       `gorm:"not null;index" json:"sold_at"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
