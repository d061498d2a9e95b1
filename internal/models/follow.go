package models

import "time"

// Follow is a follower→following user edge. Self-follows are rejected
// before this row is ever written.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"size:36;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"following_id" gorm:"size:36;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
