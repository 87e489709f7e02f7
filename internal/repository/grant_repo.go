package repository

import (
	"context"

	"backend/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Grant is the materialized (role, page, permission-kind) triple produced by
// joining a user's role links through role permissions to page permissions,
// filtered to active rows at every hop. Grants are never persisted; they are
// recomputed per authorization decision so that deactivating any hop takes
// effect on the next request.
type Grant struct {
	RoleName       string              `json:"role_name"`
	PageName       string              `json:"page_name"`
	PageURL        string              `json:"page_url"`
	PermissionKind auth.PermissionKind `json:"permission_kind"`
}

// GrantRepository is the role-permission join engine.
type GrantRepository interface {
	GrantsForUser(ctx context.Context, userID uuid.UUID) ([]Grant, error)
	RoleNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	// HasGrant reports whether any active grant matches the page URL and kind.
	HasGrant(ctx context.Context, userID uuid.UUID, pageURL string, kind auth.PermissionKind) (bool, error)
}

type grantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) GrantRepository {
	return &grantRepository{db: db}
}

const grantJoin = `
	FROM user_roles ur
	INNER JOIN roles r ON r.id = ur.role_id AND r.is_active = ?
	INNER JOIN role_permissions rp ON rp.role_id = ur.role_id AND rp.is_active = ?
	INNER JOIN page_permissions pp ON pp.id = rp.page_permission_id AND pp.is_active = ?
	WHERE ur.user_id = ? AND ur.is_active = ?`

func (g *grantRepository) GrantsForUser(ctx context.Context, userID uuid.UUID) ([]Grant, error) {
	var grants []Grant
	err := GetDB(ctx, g.db).Raw(`
	SELECT DISTINCT r.name AS role_name, pp.page_name, pp.page_url, pp.permission_kind`+grantJoin,
		true, true, true, userID, true,
	).Scan(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// RoleNamesForUser returns the distinct active role names for a user. A user
// with no active role links yields an empty slice, not an error.
func (g *grantRepository) RoleNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := GetDB(ctx, g.db).Raw(`
	SELECT DISTINCT r.name
	FROM user_roles ur
	INNER JOIN roles r ON r.id = ur.role_id AND r.is_active = ?
	WHERE ur.user_id = ? AND ur.is_active = ?`,
		true, userID, true,
	).Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (g *grantRepository) HasGrant(ctx context.Context, userID uuid.UUID, pageURL string, kind auth.PermissionKind) (bool, error) {
	var count int64
	err := GetDB(ctx, g.db).Raw(`
	SELECT COUNT(*)`+grantJoin+` AND pp.page_url = ? AND pp.permission_kind = ?`,
		true, true, true, userID, true, pageURL, kind,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
