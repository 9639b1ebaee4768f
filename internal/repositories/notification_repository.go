package repositories

import (
	"github.com/lumora-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationsByRecipient(recipientID uint) ([]models.Notification, error)
	MarkAsRead(id, recipientID uint) error
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// CreateNotification creates a new notification record
func (r *PostgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetNotificationsByRecipient retrieves a profile's notifications, newest first
func (r *PostgresNotificationRepository) GetNotificationsByRecipient(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkAsRead marks a notification as read. The recipient scoping keeps a
// profile from touching someone else's notifications.
func (r *PostgresNotificationRepository) MarkAsRead(id, recipientID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
