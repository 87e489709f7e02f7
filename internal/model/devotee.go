package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Devotee is a member registered with a temple. Deactivation is a soft
// operation; the row is retained for donation and contribution history.
type Devotee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TempleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"temple_id"`
	Temple      Temple         `gorm:"foreignKey:TempleID" json:"-"`
	FullName    string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string         `gorm:"type:varchar(255)" json:"email"`
	Phone       string         `gorm:"type:varchar(20)" json:"phone"`
	Address     string         `gorm:"type:text" json:"address"`
	Gotra       string         `gorm:"type:varchar(100)" json:"gotra"`
	DateOfBirth *time.Time     `json:"date_of_birth"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Devotee) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
