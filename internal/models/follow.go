package models

import "time"

// Follow is a directed edge between two profiles. The composite unique
// index makes duplicate edges impossible under concurrent requests; the
// two directions between a pair of profiles are independent rows.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
