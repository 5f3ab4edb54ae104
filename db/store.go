package db

import (
	"context"
	"errors"
	"fmt"

	"blog-app/blog"
	"blog-app/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the GORM implementation of blog.Repository.
type Store struct {
	db *gorm.DB
}

var _ blog.Repository = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, blog.ErrNotFound)
	}
	return fmt.Errorf("finding %s: %w", what, err)
}

// validID reports whether id fits a uuid column. Postgres rejects anything else
// with an error rather than an empty result.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return blog.ErrDuplicateUsername
	}
	return err
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, fmt.Errorf("user: %w", blog.ErrNotFound)
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (s *Store) withPostRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.withPostRelations(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) FindPost(ctx context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, fmt.Errorf("post: %w", blog.ErrNotFound)
	}
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "post")
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if !validID(id) {
		return fmt.Errorf("post: %w", blog.ErrNotFound)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("deleting comments: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("deleting likes: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post: %w", blog.ErrNotFound)
		}
		return nil
	})
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if !validID(comment.PostID) {
		return fmt.Errorf("post: %w", blog.ErrNotFound)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, "id = ?", comment.PostID).Error; err != nil {
			return notFound(err, "post")
		}
		return tx.Omit(clause.Associations).Create(comment).Error
	})
}

func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	if !validID(postID) {
		return false, fmt.Errorf("post: %w", blog.ErrNotFound)
	}
	liked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, "id = ?", postID).Error; err != nil {
			return notFound(err, "post")
		}

		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		like := models.Like{PostID: postID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}
