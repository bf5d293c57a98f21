package backend

import (
	"Storefront/models"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps inventory and cart in SQL tables through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

// SeedInventory inserts items whose id is not present yet.
func (s *GormStore) SeedInventory(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&items).
		Error
}

func (s *GormStore) ListCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

func (s *GormStore) UpsertCartItem(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "quantity"}),
		}).
		Create(&item).
		Error
	return item, err
}

func (s *GormStore) UpdateCartQuantity(ctx context.Context, id, quantity int) (models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		item.Quantity = quantity
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	}
	return item, err
}

func (s *GormStore) DeleteCartItem(ctx context.Context, id int) (models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, ErrNotFound
	}
	return item, err
}

func (s *GormStore) ClearCart(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.CartItem{}).
		Error
}
