package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateInventoryItemRequest struct {
	TempleID     string `json:"temple_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Unit         string `json:"unit" binding:"required"`
	Quantity     int    `json:"quantity" binding:"gte=0"`
	ReorderLevel int    `json:"reorder_level" binding:"gte=0"`
}

type AdjustInventoryRequest struct {
	// Delta is the signed quantity change: positive for stock-in, negative
	// for consumption.
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

type InventoryService interface {
	Create(ctx context.Context, req CreateInventoryItemRequest) (*model.InventoryItem, error)
	Get(ctx context.Context, id string) (*model.InventoryItem, error)
	ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.InventoryItem, int64, error)
	// Adjust changes the item quantity inside a transaction; stock can never
	// go negative.
	Adjust(ctx context.Context, id string, req AdjustInventoryRequest) (*model.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

type inventoryService struct {
	db  *gorm.DB
	hub *websocket.Hub
}

func NewInventoryService(db *gorm.DB, hub *websocket.Hub) InventoryService {
	return &inventoryService{db: db, hub: hub}
}

func (s *inventoryService) Create(ctx context.Context, req CreateInventoryItemRequest) (*model.InventoryItem, error) {
	templeID, err := uuid.Parse(req.TempleID)
	if err != nil {
		return nil, fmt.Errorf("invalid temple id: %w", err)
	}

	item := model.InventoryItem{
		TempleID:     templeID,
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return &item, nil
}

func (s *inventoryService) Get(ctx context.Context, id string) (*model.InventoryItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}

	var item model.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, fmt.Errorf("inventory item not found: %w", err)
	}
	return &item, nil
}

func (s *inventoryService) ListByTemple(ctx context.Context, templeID string, page, limit int) ([]model.InventoryItem, int64, error) {
	tid, err := uuid.Parse(templeID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid temple id: %w", err)
	}

	var items []model.InventoryItem
	var total int64

	db := s.db.WithContext(ctx).Where("temple_id = ?", tid)
	if err := db.Model(&model.InventoryItem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *inventoryService) Adjust(ctx context.Context, id string, req AdjustInventoryRequest) (*model.InventoryItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}

	var item model.InventoryItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return fmt.Errorf("inventory item not found: %w", err)
		}

		newQty := item.Quantity + req.Delta
		if newQty < 0 {
			return fmt.Errorf("insufficient stock: have %d, requested %d", item.Quantity, -req.Delta)
		}

		item.Quantity = newQty
		return tx.Model(&item).Update("quantity", newQty).Error
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Publish("inventory.adjusted", item)
	}
	return &item, nil
}

func (s *inventoryService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}
