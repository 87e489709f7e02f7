package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation records a single offering made to a temple. DevoteeID is optional;
// walk-in donors are recorded by name only.
type Donation struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TempleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"temple_id"`
	DevoteeID   *uuid.UUID      `gorm:"type:uuid;index" json:"devotee_id"`
	DonorName   string          `gorm:"type:varchar(255);not null" json:"donor_name"`
	Purpose     string          `gorm:"type:varchar(255)" json:"purpose"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMode string          `gorm:"type:varchar(50);not null" json:"payment_mode"` // cash, upi, card, cheque
	ReceiptNo   string          `gorm:"type:varchar(50);uniqueIndex" json:"receipt_no"`
	DonatedAt   time.Time       `gorm:"not null;index" json:"donated_at"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
