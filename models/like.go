package models

import (
	"time"
)

// Like is one membership of a user in a post's like set.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;not null;uniqueIndex:idx_likes_post_user"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
