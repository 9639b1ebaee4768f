package models

import "time"

// Post is a piece of content owned by exactly one Profile. Posted is
// assigned by the server on creation and never changes afterwards.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index"`
	Content   string    `json:"content,omitempty"`
	MediaKey  string    `json:"media_key,omitempty"` // media store reference
	Posted    time.Time `json:"posted" gorm:"autoCreateTime"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content,omitempty" validate:"omitempty,max=2200"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content string `json:"content,omitempty" validate:"omitempty,max=2200"`
}

// PostFilter holds the optional filters for post listings. Hashtag and
// Content are case-insensitive substring matches on the post content
// (Hashtag is matched with a leading '#'); LikedBy matches posts liked by
// the profile with that exact username.
type PostFilter struct {
	Hashtag string
	Content string
	LikedBy string
}
