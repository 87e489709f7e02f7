package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account able to authenticate against the API. Accounts
// created through self-registration start inactive and unverified; email
// verification consumes the code and flips both flags. Admin-created accounts
// are active and verified immediately.
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email            string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName      string         `gorm:"type:varchar(255)" json:"display_name"`
	Phone            string         `gorm:"type:varchar(20)" json:"phone"`
	Password         string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	IsActive         bool           `gorm:"default:false" json:"is_active"`
	IsVerified       bool           `gorm:"default:false" json:"is_verified"`
	VerificationCode *string        `gorm:"type:varchar(64);index" json:"-"` // nil once consumed
	Roles            []UserRole     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserRole links a user to a role. The link carries its own active flag: an
// assignment can be switched off without touching the user or the role, and
// membership is effective only while both the link and the role are active.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roles_user_role" json:"user_id"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roles_user_role" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"-"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ur *UserRole) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	return nil
}
