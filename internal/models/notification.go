package models

import "time"

// Notification is a stored record of an interaction aimed at a profile.
// Records are only persisted and listed; there is no push delivery.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // follow, like, comment
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    uint      `json:"target_id"`                 // post or comment ID
	TargetType  string    `json:"target_type" gorm:"size:20"` // post, comment, profile
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
