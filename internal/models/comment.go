package models

import "time"

// Comment is authored by a Profile on a Post. A profile may leave any
// number of comments on the same post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index"`
	PostID    uint      `json:"post_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentRecord is the denormalized comment listing entry: the comment
// plus the commenter's display name and the post content it refers to.
type CommentRecord struct {
	ID          uint      `json:"id"`
	ProfileID   uint      `json:"profile_id"`
	Username    string    `json:"username"`
	PostID      uint      `json:"post_id"`
	PostContent string    `json:"post_content"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
