package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;not null;index"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	Author    User      `json:"author" gorm:"foreignKey:UserID"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
