package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicdesk/booking-api/internal/models"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) (string, error)
	FindByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, oldID string, userID uint, newHash string, newExpiry time.Time) error
	RevokeAllForUser(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, userID uint, tokenHash string, expiresAt time.Time) (string, error) {
	rt := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(rt).Error; err != nil {
		return "", err
	}
	return rt.ID, nil
}

func (r *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// Rotate revokes the old token and stores its replacement in one transaction.
func (r *refreshTokenRepository) Rotate(ctx context.Context, oldID string, userID uint, newHash string, newExpiry time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("id = ?", oldID).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			ID:        uuid.New().String(),
			UserID:    userID,
			TokenHash: newHash,
			ExpiresAt: newExpiry,
		}).Error
	})
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true).Error
}
