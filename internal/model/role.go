package model

import (
	"time"

	"backend/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is reference data seeded at startup and rarely edited afterwards.
// Deactivating a role withdraws every grant flowing through it without
// deleting any rows.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsSystem    bool      `gorm:"default:false" json:"is_system"` // built-in roles cannot be deleted
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// PagePermission declares that a page URL supports one kind of operation,
// e.g. (Read, "/donations"). One row exists per page per kind.
type PagePermission struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	PageName       string              `gorm:"type:varchar(100);not null" json:"page_name"`
	PageURL        string              `gorm:"type:varchar(255);not null;index:idx_page_permissions_url_kind" json:"page_url"`
	PermissionKind auth.PermissionKind `gorm:"not null;index:idx_page_permissions_url_kind" json:"permission_kind"`
	IsActive       bool                `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PagePermission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RolePermission links a role to a page permission. A role grants the page
// permission only while the link, the page permission and the role itself are
// all active.
type RolePermission struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_role_permissions_role_page" json:"role_id"`
	PagePermissionID uuid.UUID      `gorm:"type:uuid;not null;index:idx_role_permissions_role_page" json:"page_permission_id"`
	Role             Role           `gorm:"foreignKey:RoleID" json:"-"`
	PagePermission   PagePermission `gorm:"foreignKey:PagePermissionID" json:"-"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (rp *RolePermission) BeforeCreate(tx *gorm.DB) error {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	return nil
}
