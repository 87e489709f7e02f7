package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem tracks stock held by a temple (pooja supplies, prasadam
// ingredients, shop goods). Quantity is adjusted through the inventory
// service, never written directly by handlers.
type InventoryItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TempleID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"temple_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Category     string         `gorm:"type:varchar(100);index" json:"category"`
	Unit         string         `gorm:"type:varchar(20);not null" json:"unit"` // kg, litre, piece
	Quantity     int            `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel int            `gorm:"not null;default:0" json:"reorder_level"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
