package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/clinicdesk/booking-api/internal/models"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindConfirmedBySlot(ctx context.Context, tx *gorm.DB, slotID uint) (*models.Booking, error)
	FindConfirmedBySlotAndUser(ctx context.Context, tx *gorm.DB, slotID, userID uint) (*models.Booking, error)
	FindConfirmedForSlot(ctx context.Context, slotID uint, userID *uint) ([]models.Booking, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	UpdateReason(ctx context.Context, bookingID uint, reason string) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Slot.Doctor").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindConfirmedBySlot(ctx context.Context, tx *gorm.DB, slotID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, models.StatusConfirmed).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindConfirmedBySlotAndUser(ctx context.Context, tx *gorm.DB, slotID, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("slot_id = ? AND user_id = ? AND status = ?", slotID, userID, models.StatusConfirmed).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindConfirmedForSlot lists confirmed bookings for a slot. A non-nil userID
// narrows the result to bookings owned by that user.
func (r *bookingRepository) FindConfirmedForSlot(ctx context.Context, slotID uint, userID *uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, models.StatusConfirmed)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	err := q.Preload("Slot").Preload("Slot.Doctor").Preload("User").
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Slot").
		Preload("Slot.Doctor").
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Slot.Doctor").
		Preload("User").
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *bookingRepository) UpdateReason(ctx context.Context, bookingID uint, reason string) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("reason", reason).Error
}
