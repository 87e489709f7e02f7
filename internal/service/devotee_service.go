package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateDevoteeRequest struct {
	TempleID    string     `json:"temple_id" binding:"required,uuid"`
	FullName    string     `json:"full_name" binding:"required"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Gotra       string     `json:"gotra"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

type UpdateDevoteeRequest struct {
	FullName    string     `json:"full_name"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	Gotra       string     `json:"gotra"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

type DevoteeService interface {
	Create(ctx context.Context, req CreateDevoteeRequest) (*model.Devotee, error)
	Get(ctx context.Context, id string) (*model.Devotee, error)
	// ListByTemple returns the temple's devotees; templeID is required to
	// keep tenants isolated.
	ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Devotee, int64, error)
	Update(ctx context.Context, id string, req UpdateDevoteeRequest) (*model.Devotee, error)
	Deactivate(ctx context.Context, id string) error
}

type devoteeService struct {
	db *gorm.DB
}

func NewDevoteeService(db *gorm.DB) DevoteeService {
	return &devoteeService{db: db}
}

func (s *devoteeService) Create(ctx context.Context, req CreateDevoteeRequest) (*model.Devotee, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	var temple model.Temple
	if err := s.db.WithContext(ctx).First(&temple, "id = ?", templeID).Error; err != nil {
		return nil, fmt.Errorf("temple not found: %w", err)
	}

	devotee := model.Devotee{
		TempleID:    templeID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Gotra:       req.Gotra,
		DateOfBirth: req.DateOfBirth,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&devotee).Error; err != nil {
		return nil, fmt.Errorf("failed to create devotee: %w", err)
	}
	return &devotee, nil
}

func (s *devoteeService) Get(ctx context.Context, id string) (*model.Devotee, error) {
	devoteeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid devotee id: %w", err)
	}

	var devotee model.Devotee
	if err := s.db.WithContext(ctx).First(&devotee, "id = ?", devoteeID).Error; err != nil {
		return nil, fmt.Errorf("devotee not found: %w", err)
	}
	return &devotee, nil
}

func (s *devoteeService) ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Devotee, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var devotees []model.Devotee
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.Devotee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("full_name ASC").Offset(offset).Limit(limit).Find(&devotees).Error; err != nil {
		return nil, 0, err
	}
	return devotees, total, nil
}

func (s *devoteeService) Update(ctx context.Context, id string, req UpdateDevoteeRequest) (*model.Devotee, error) {
	devotee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		devotee.FullName = req.FullName
	}
	if req.Email != "" {
		devotee.Email = req.Email
	}
	if req.Phone != "" {
		devotee.Phone = req.Phone
	}
	if req.Address != "" {
		devotee.Address = req.Address
	}
	if req.Gotra != "" {
		devotee.Gotra = req.Gotra
	}
	if req.DateOfBirth != nil {
		devotee.DateOfBirth = req.DateOfBirth
	}

	if err := s.db.WithContext(ctx).Save(devotee).Error; err != nil {
		return nil, fmt.Errorf("failed to update devotee: %w", err)
	}
	return devotee, nil
}

func (s *devoteeService) Deactivate(ctx context.Context, id string) error {
	devotee, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(devotee).Update("is_active", false).Error
}
