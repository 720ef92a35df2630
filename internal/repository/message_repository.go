package repository

import (
	"context"

	"sports-lore-chatbot/backend/internal/models"

	"gorm.io/gorm"
)

// MessageRepository is the persistence contract for the append-only message log
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]models.Message, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetRecentByUser returns up to limit messages for the user, newest first.
// Callers reverse the slice when they need chronological order.
func (r *GormMessageRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *GormMessageRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

func (r *GormMessageRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
