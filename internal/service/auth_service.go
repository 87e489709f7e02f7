package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Authentication failure messages. Unknown identity and wrong password share
// one message so callers cannot probe which usernames exist; unverified and
// deactivated accounts get distinct, actionable messages.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email not verified; please check your verification email")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrInvalidVerifyCode  = errors.New("invalid or expired verification code")
)

// DevoteeRoleName is the role granted to self-registered accounts.
const DevoteeRoleName = "Devotee"

// --- DTOs ---

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// Email delivery is handled outside this service; the code is surfaced
	// here so the delivery pipeline can pick it up.
	VerificationCode string `json:"verification_code"`
}

type ProfileResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Phone       string   `json:"phone"`
	Roles       []string `json:"roles"`
}

// --- Interface ---

// AuthService resolves identities and manages the registration/verification
// lifecycle. Authentication is stateless: every request reauthenticates.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	// Authenticate resolves (username-or-email, password) into an identity
	// carrying the user's active role names, or one of the typed failures
	// above.
	Authenticate(ctx context.Context, login, password string) (*auth.Identity, error)
	Verify(ctx context.Context, code string) error
	Profile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	RoleNames(ctx context.Context, userID uuid.UUID) ([]string, error)
	Grants(ctx context.Context, userID uuid.UUID) ([]repository.Grant, error)
}

type authService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	grants repository.GrantRepository
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, grants repository.GrantRepository) AuthService {
	return &authService{users: users, roles: roles, grants: grants}
}

// --- Implementation ---

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if _, err := s.users.GetByLogin(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	}
	if _, err := s.users.GetByLogin(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code := uuid.NewString()
	user := &model.User{
		Username:         req.Username,
		Email:            req.Email,
		DisplayName:      req.DisplayName,
		Phone:            req.Phone,
		Password:         string(hashed),
		IsActive:         false,
		IsVerified:       false,
		VerificationCode: &code,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Self-registered accounts start with the Devotee role. The role is
	// seeded at startup; a missing role only means no grants until an admin
	// assigns one.
	if role, err := s.roles.FindByName(ctx, DevoteeRoleName); err == nil {
		if err := s.users.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, fmt.Errorf("failed to assign default role: %w", err)
		}
	}

	return &RegisterResponse{
		ID:               user.ID.String(),
		Username:         user.Username,
		Email:            user.Email,
		VerificationCode: code,
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, login, password string) (*auth.Identity, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		// Do not reveal whether the identity exists.
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	roles, err := s.grants.RoleNamesForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	return &auth.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       roles,
	}, nil
}

// Verify consumes a one-time verification code, activating and verifying the
// account. A consumed or unknown code fails.
func (s *authService) Verify(ctx context.Context, code string) error {
	user, err := s.users.GetByVerificationCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerifyCode
		}
		return fmt.Errorf("failed to look up verification code: %w", err)
	}

	user.IsActive = true
	user.IsVerified = true
	user.VerificationCode = nil

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	roles, err := s.grants.RoleNamesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	return &ProfileResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Phone:       user.Phone,
		Roles:       roles,
	}, nil
}

func (s *authService) RoleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.grants.RoleNamesForUser(ctx, userID)
}

func (s *authService) Grants(ctx context.Context, userID uuid.UUID) ([]repository.Grant, error) {
	return s.grants.GrantsForUser(ctx, userID)
}
