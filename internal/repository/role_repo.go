package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository defines data access for roles and page permissions.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	ListAll(ctx context.Context) ([]model.Role, error)

	ListPagePermissions(ctx context.Context) ([]model.PagePermission, error)
	FindOrCreatePagePermission(ctx context.Context, perm *model.PagePermission) error
	PagePermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]model.PagePermission, error)
	// ReplacePermissions swaps the role's permission set for the given page
	// permission ids. Callers run it inside a transaction via the tx manager.
	ReplacePermissions(ctx context.Context, roleID uuid.UUID, pagePermissionIDs []uuid.UUID) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Save(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Role{}).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByName compares case-insensitively; role names are unique regardless of
// casing.
func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Where("LOWER(name) = LOWER(?)", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) ListAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) ListPagePermissions(ctx context.Context) ([]model.PagePermission, error) {
	var perms []model.PagePermission
	if err := GetDB(ctx, r.db).Order("page_url ASC, permission_kind ASC").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *roleRepository) FindOrCreatePagePermission(ctx context.Context, perm *model.PagePermission) error {
	return GetDB(ctx, r.db).
		Where("page_url = ? AND permission_kind = ?", perm.PageURL, perm.PermissionKind).
		FirstOrCreate(perm).Error
}

func (r *roleRepository) PagePermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]model.PagePermission, error) {
	var perms []model.PagePermission
	err := GetDB(ctx, r.db).
		Joins("INNER JOIN role_permissions rp ON rp.page_permission_id = page_permissions.id AND rp.is_active = ?", true).
		Where("rp.role_id = ?", roleID).
		Order("page_url ASC, permission_kind ASC").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *roleRepository) ReplacePermissions(ctx context.Context, roleID uuid.UUID, pagePermissionIDs []uuid.UUID) error {
	db := GetDB(ctx, r.db)

	if err := db.Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error; err != nil {
		return err
	}

	for _, permID := range pagePermissionIDs {
		link := model.RolePermission{
			RoleID:           roleID,
			PagePermissionID: permID,
			IsActive:         true,
		}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
