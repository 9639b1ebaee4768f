package models

import "time"

// Like is an edge between a Profile and a Post, unique per pair.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;uniqueIndex:idx_profile_post_like"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_profile_post_like"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeRecord is the denormalized like listing entry: the edge plus the
// liker's display name.
type LikeRecord struct {
	ID        uint   `json:"id"`
	ProfileID uint   `json:"profile_id"`
	Username  string `json:"username"`
}
