package blog

import (
	"context"
	"mime/multipart"

	"blog-app/models"
)

// Repository is the document store behind the blog. Lookups of missing records
// return ErrNotFound; creating a user whose name is taken returns ErrDuplicateUsername.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// ListPosts returns every post newest first with author, comments (oldest first,
	// with their authors) and likes loaded.
	ListPosts(ctx context.Context) ([]models.Post, error)
	FindPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	// DeletePost removes the post together with its comments and likes.
	DeletePost(ctx context.Context, id string) error

	// CreateComment fails with ErrNotFound when comment.PostID does not exist.
	CreateComment(ctx context.Context, comment *models.Comment) error
	// ToggleLike flips userID's membership in the post's like set and reports
	// whether the user now likes the post.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

// ImageStore keeps uploaded post images and hands back a retrievable reference.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// EventPublisher receives domain events once the change is stored.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}
