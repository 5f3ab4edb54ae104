package sessions

import (
	"context"
	"errors"
	"time"

	"blog-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps sessions in the sessions table so they survive restarts.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (g *GormStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := g.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	} else if err != nil {
		return nil, err
	}
	if s.Expired(g.now()) {
		_ = g.Delete(ctx, id)
		return nil, ErrNoSession
	}
	return &s, nil
}

func (g *GormStore) Save(ctx context.Context, session *models.Session) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(session).Error
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}
