package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pooja is a ritual offered by a temple at a fixed price.
type Pooja struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TempleID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"temple_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Pooja) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Booking statuses.
const (
	BookingStatusScheduled = "SCHEDULED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
)

// PoojaBooking is a devotee's reservation of a pooja slot.
type PoojaBooking struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PoojaID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"pooja_id"`
	Pooja       Pooja           `gorm:"foreignKey:PoojaID" json:"-"`
	TempleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"temple_id"`
	DevoteeID   *uuid.UUID      `gorm:"type:uuid;index" json:"devotee_id"`
	DevoteeName string          `gorm:"type:varchar(255);not null" json:"devotee_name"`
	ScheduledAt time.Time       `gorm:"not null;index" json:"scheduled_at"`
	Status      string          `gorm:"type:varchar(20);not null;default:SCHEDULED" json:"status"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *PoojaBooking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
