package repository

import (
	"context"
	"strings"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines data access for User entities and their role links.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByLogin matches the identifier against either the username or the
	// email column, case-insensitively.
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByVerificationCode(ctx context.Context, code string) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	DeactivateRoleLink(ctx context.Context, userID, roleID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	needle := strings.ToLower(login)
	err := GetDB(ctx, r.db).
		Where("LOWER(username) = ? OR LOWER(email) = ?", needle, needle).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByVerificationCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "verification_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Save(user).Error
}

// Deactivate soft-disables the account; the row is never removed so the
// donation/booking history stays attributable.
func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// AssignRole links a user to a role, reactivating an existing link if one is
// already present instead of inserting a duplicate.
func (r *userRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var link model.UserRole
	err := db.Where("user_id = ? AND role_id = ?", userID, roleID).First(&link).Error
	if err == nil {
		if link.IsActive {
			return nil
		}
		return db.Model(&link).Update("is_active", true).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	return db.Create(&model.UserRole{UserID: userID, RoleID: roleID, IsActive: true}).Error
}

func (r *userRepository) DeactivateRoleLink(ctx context.Context, userID, roleID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Update("is_active", false).Error
}
