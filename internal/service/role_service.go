package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateRolePermissionsRequest struct {
	PagePermissionIDs []string `json:"page_permission_ids" binding:"required"`
}

type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	IsSystem    bool   `json:"is_system"`
}

type PagePermissionResponse struct {
	ID             string `json:"id"`
	PageName       string `json:"page_name"`
	PageURL        string `json:"page_url"`
	PermissionKind int    `json:"permission_kind"`
	Permission     string `json:"permission"`
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleResponse, error)
	CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
	ListPagePermissions(ctx context.Context) ([]PagePermissionResponse, error)
	RolePermissions(ctx context.Context, roleID string) ([]PagePermissionResponse, error)
	// UpdateRolePermissions replaces the role's whole permission set inside
	// one transaction.
	UpdateRolePermissions(ctx context.Context, roleID string, req UpdateRolePermissionsRequest) ([]PagePermissionResponse, error)
	AssignRoleToUser(ctx context.Context, userID, roleID string) error
	RevokeRoleFromUser(ctx context.Context, userID, roleID string) error
	SeedDefaults(ctx context.Context) error
}

type roleService struct {
	roles repository.RoleRepository
	users repository.UserRepository
	tx    repository.TransactionManager
}

func NewRoleService(roles repository.RoleRepository, users repository.UserRepository, tx repository.TransactionManager) RoleService {
	return &roleService{roles: roles, users: users, tx: tx}
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*RoleResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid role id: %w", err)
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	resp := toRoleResponse(*role)
	return &resp, nil
}

func (s *roleService) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	if _, err := s.roles.FindByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("role '%s' already exists", req.Name)
	}

	role := model.Role{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		IsSystem:    false,
	}
	if err := s.roles.Create(ctx, &role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid role id: %w", err)
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	role.Name = req.Name
	role.Description = req.Description
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	resp := toRoleResponse(*role)
	return &resp, nil
}

func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid role id: %w", err)
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("role not found: %w", err)
	}

	if role.IsSystem {
		return fmt.Errorf("cannot delete system role '%s'", role.Name)
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.roles.Delete(txCtx, roleID)
	})
}

func (s *roleService) ListPagePermissions(ctx context.Context) ([]PagePermissionResponse, error) {
	perms, err := s.roles.ListPagePermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page permissions: %w", err)
	}

	res := make([]PagePermissionResponse, 0, len(perms))
	for _, p := range perms {
		res = append(res, toPagePermissionResponse(p))
	}
	return res, nil
}

func (s *roleService) RolePermissions(ctx context.Context, roleID string) ([]PagePermissionResponse, error) {
	id, err := uuid.Parse(roleID)
	if err != nil {
		return nil, fmt.Errorf("invalid role id: %w", err)
	}

	perms, err := s.roles.PagePermissionsForRole(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role permissions: %w", err)
	}

	res := make([]PagePermissionResponse, 0, len(perms))
	for _, p := range perms {
		res = append(res, toPagePermissionResponse(p))
	}
	return res, nil
}

func (s *roleService) UpdateRolePermissions(ctx context.Context, roleID string, req UpdateRolePermissionsRequest) ([]PagePermissionResponse, error) {
	id, err := uuid.Parse(roleID)
	if err != nil {
		return nil, fmt.Errorf("invalid role id: %w", err)
	}

	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	permIDs := make([]uuid.UUID, 0, len(req.PagePermissionIDs))
	for _, pid := range req.PagePermissionIDs {
		parsed, parseErr := uuid.Parse(pid)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid page permission id '%s': %w", pid, parseErr)
		}
		permIDs = append(permIDs, parsed)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.roles.ReplacePermissions(txCtx, id, permIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update role permissions: %w", err)
	}

	return s.RolePermissions(ctx, roleID)
}

func (s *roleService) AssignRoleToUser(ctx context.Context, userID, roleID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return fmt.Errorf("invalid role id: %w", err)
	}

	if _, err := s.users.GetByID(ctx, uid); err != nil {
		return errors.New("user not found")
	}
	if _, err := s.roles.FindByID(ctx, rid); err != nil {
		return errors.New("role not found")
	}

	return s.users.AssignRole(ctx, uid, rid)
}

func (s *roleService) RevokeRoleFromUser(ctx context.Context, userID, roleID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return fmt.Errorf("invalid role id: %w", err)
	}
	return s.users.DeactivateRoleLink(ctx, uid, rid)
}

// --- Seeding ---

type pageDef struct {
	Name string
	URL  string
}

// Pages guarded by the permission system. Each gets one PagePermission per
// kind at seed time.
var defaultPages = []pageDef{
	{Name: "Temples", URL: "/temples"},
	{Name: "Devotees", URL: "/devotees"},
	{Name: "Donations", URL: "/donations"},
	{Name: "Events", URL: "/events"},
	{Name: "Inventory", URL: "/inventory"},
	{Name: "Sales", URL: "/sales"},
	{Name: "Poojas", URL: "/poojas"},
	{Name: "Contributions", URL: "/contributions"},
	{Name: "Users", URL: "/users"},
	{Name: "UserRoleConfiguration", URL: "/userroleconfiguration"},
}

var allKinds = []auth.PermissionKind{
	auth.PermissionRead,
	auth.PermissionWrite,
	auth.PermissionUpdate,
	auth.PermissionDelete,
}

// SeedDefaults creates the page permissions and built-in roles if they are
// missing, and refreshes each built-in role's permission set. Safe to run on
// every startup.
func (s *roleService) SeedDefaults(ctx context.Context) error {
	permsByKey := make(map[string]model.PagePermission)
	for _, page := range defaultPages {
		for _, kind := range allKinds {
			perm := model.PagePermission{
				PageName:       page.Name,
				PageURL:        page.URL,
				PermissionKind: kind,
				IsActive:       true,
			}
			if err := s.roles.FindOrCreatePagePermission(ctx, &perm); err != nil {
				return fmt.Errorf("failed to seed page permission %s %s: %w", kind, page.URL, err)
			}
			permsByKey[page.URL+"|"+kind.String()] = perm
		}
	}

	grant := func(urls []string, kinds ...auth.PermissionKind) []uuid.UUID {
		var ids []uuid.UUID
		for _, url := range urls {
			for _, kind := range kinds {
				if p, ok := permsByKey[url+"|"+kind.String()]; ok {
					ids = append(ids, p.ID)
				}
			}
		}
		return ids
	}

	operationalPages := []string{"/devotees", "/donations", "/events", "/inventory", "/sales", "/poojas", "/contributions"}
	allPages := make([]string, 0, len(defaultPages))
	for _, p := range defaultPages {
		allPages = append(allPages, p.URL)
	}

	roleDefinitions := []struct {
		Name        string
		Description string
		PermIDs     []uuid.UUID
	}{
		{
			Name:        "Admin",
			Description: "Full access to every page",
			PermIDs:     grant(allPages, allKinds...),
		},
		{
			Name:        "Manager",
			Description: "Day-to-day temple management without deletes or role configuration",
			PermIDs: append(
				grant(operationalPages, auth.PermissionRead, auth.PermissionWrite, auth.PermissionUpdate),
				grant([]string{"/temples", "/users"}, auth.PermissionRead, auth.PermissionUpdate)...,
			),
		},
		{
			Name:        "Staff",
			Description: "Counter operations: record donations, sales and bookings",
			PermIDs: append(
				grant(operationalPages, auth.PermissionRead, auth.PermissionWrite),
				grant([]string{"/temples"}, auth.PermissionRead)...,
			),
		},
		{
			Name:        DevoteeRoleName,
			Description: "Browse events and poojas",
			PermIDs:     grant([]string{"/events", "/poojas"}, auth.PermissionRead),
		},
	}

	for _, def := range roleDefinitions {
		role, err := s.roles.FindByName(ctx, def.Name)
		if err != nil {
			role = &model.Role{
				Name:        def.Name,
				Description: def.Description,
				IsActive:    true,
				IsSystem:    true,
			}
			if err := s.roles.Create(ctx, role); err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", def.Name, err)
			}
		}

		permIDs := def.PermIDs
		roleID := role.ID
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return s.roles.ReplacePermissions(txCtx, roleID, permIDs)
		})
		if err != nil {
			return fmt.Errorf("failed to assign permissions to role '%s': %w", def.Name, err)
		}
	}

	return nil
}

// --- Helpers ---

func toRoleResponse(r model.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		IsSystem:    r.IsSystem,
	}
}

func toPagePermissionResponse(p model.PagePermission) PagePermissionResponse {
	return PagePermissionResponse{
		ID:             p.ID.String(),
		PageName:       p.PageName,
		PageURL:        p.PageURL,
		PermissionKind: int(p.PermissionKind),
		Permission:     p.PermissionKind.String(),
	}
}
