package models

import (
	"time"
)

// Session is the server-side half of a login. Anonymous sessions have an empty UserID
// and exist only to carry flash messages.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;index"`
	Flashes   Flashes   `json:"flashes" gorm:"type:text"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
