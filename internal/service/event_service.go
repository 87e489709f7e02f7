package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	TempleID    string    `json:"temple_id" binding:"required,uuid"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at"`
}

type UpdateEventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type EventService interface {
	Create(ctx context.Context, req CreateEventRequest) (*model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Event, int64, error)
	// Upcoming lists active events starting after now, soonest first.
	Upcoming(ctx context.Context, templeID string, limit int) ([]model.Event, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) (*model.Event, error)
	Cancel(ctx context.Context, id string) error
}

type eventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) EventService {
	return &eventService{db: db}
}

func (s *eventService) Create(ctx context.Context, req CreateEventRequest) (*model.Event, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("event cannot end before it starts")
	}

	event := model.Event{
		TempleID:    templeID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*model.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}

	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}
	return &event, nil
}

func (s *eventService) ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.Event, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var events []model.Event
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("starts_at DESC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *eventService) Upcoming(ctx context.Context, templeID string, limit int) ([]model.Event, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	var events []model.Event
	err = s.db.WithContext(ctx).
		Where("temple_id = ? AND is_active = ? AND starts_at > ?", tid, true, time.Now()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id string, req UpdateEventRequest) (*model.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		event.Name = req.Name
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if !event.EndsAt.IsZero() && event.EndsAt.Before(event.StartsAt) {
		return nil, fmt.Errorf("event cannot end before it starts")
	}

	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Cancel(ctx context.Context, id string) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(event).Update("is_active", false).Error
}
