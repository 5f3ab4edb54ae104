package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	Author    User      `json:"author" gorm:"foreignKey:UserID"`
	Title     string    `json:"title" gorm:"not null"`
	Caption   string    `json:"caption"`
	Hash      string    `json:"hash"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url"`
	Likes     []Like    `json:"likes" gorm:"foreignKey:PostID"`
	Comments  []Comment `json:"comments" gorm:"foreignKey:PostID"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// PostCreate holds the form fields of a new post. The image travels separately.
type PostCreate struct {
	Title   string `form:"title"`
	Caption string `form:"caption"`
	Hash    string `form:"hash"`
}

func (Post) TableName() string {
	return "posts"
}

// LikeCount is the size of the post's like set.
func (p Post) LikeCount() int {
	return len(p.Likes)
}

// LikedBy reports whether userID is a member of the like set.
func (p Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

func (p Post) OwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}
