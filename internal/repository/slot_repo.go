package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicdesk/booking-api/internal/models"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	CreateBatch(ctx context.Context, slots []models.Slot) error
	FindByID(ctx context.Context, id uint) (*models.Slot, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Slot, error)
	FindUpcoming(ctx context.Context, from time.Time) ([]models.Slot, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, slot *models.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepository) CreateBatch(ctx context.Context, slots []models.Slot) error {
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *slotRepository) FindByID(ctx context.Context, id uint) (*models.Slot, error) {
	var slot models.Slot
	if err := r.db.WithContext(ctx).Preload("Doctor").First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindByIDForUpdate acquires a row-level lock on the slot within the given
// transaction, serializing concurrent booking attempts on the same slot.
func (r *slotRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Slot, error) {
	var slot models.Slot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindUpcoming(ctx context.Context, from time.Time) ([]models.Slot, error) {
	var slots []models.Slot
	err := r.db.WithContext(ctx).
		Where("start >= ?", from).
		Preload("Doctor").
		Preload("Bookings", "status = ?", models.StatusConfirmed).
		Order("start ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
