package service

import (
	"context"
	"fmt"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateTempleRequest struct {
	Name    string `json:"name" binding:"required"`
	Deity   string `json:"deity"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type UpdateTempleRequest struct {
	Name    string `json:"name"`
	Deity   string `json:"deity"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type TempleService interface {
	Create(ctx context.Context, req CreateTempleRequest) (*model.Temple, error)
	Get(ctx context.Context, id string) (*model.Temple, error)
	List(ctx context.Context, page, limit int) ([]model.Temple, int64, error)
	Update(ctx context.Context, id string, req UpdateTempleRequest) (*model.Temple, error)
	Deactivate(ctx context.Context, id string) error
}

type templeService struct {
	db *gorm.DB
}

func NewTempleService(db *gorm.DB) TempleService {
	return &templeService{db: db}
}

func (s *templeService) Create(ctx context.Context, req CreateTempleRequest) (*model.Temple, error) {
	temple := model.Temple{
		Name:     req.Name,
		Deity:    req.Deity,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&temple).Error; err != nil {
		return nil, fmt.Errorf("failed to create temple: %w", err)
	}
	return &temple, nil
}

func (s *templeService) Get(ctx context.Context, id string) (*model.Temple, error) {
	templeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	var temple model.Temple
	if err := s.db.WithContext(ctx).First(&temple, "id = ?", templeID).Error; err != nil {
		return nil, fmt.Errorf("temple not found: %w", err)
	}
	return &temple, nil
}

func (s *templeService) List(ctx context.Context, page, limit int) ([]model.Temple, int64, error) {
	var temples []model.Temple
	var total int64

	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Temple{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&temples).Error; err != nil {
		return nil, 0, err
	}
	return temples, total, nil
}

func (s *templeService) Update(ctx context.Context, id string, req UpdateTempleRequest) (*model.Temple, error) {
	temple, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		temple.Name = req.Name
	}
	if req.Deity != "" {
		temple.Deity = req.Deity
	}
	if req.Address != "" {
		temple.Address = req.Address
	}
	if req.City != "" {
		temple.City = req.City
	}
	if req.State != "" {
		temple.State = req.State
	}
	if req.Phone != "" {
		temple.Phone = req.Phone
	}
	if req.Email != "" {
		temple.Email = req.Email
	}

	if err := s.db.WithContext(ctx).Save(temple).Error; err != nil {
		return nil, fmt.Errorf("failed to update temple: %w", err)
	}
	return temple, nil
}

// Deactivate marks the temple inactive; dependent records stay in place.
func (s *templeService) Deactivate(ctx context.Context, id string) error {
	temple, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(temple).Update("is_active", false).Error
}
