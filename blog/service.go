package blog

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"blog-app/models"
	"blog-app/utils"

	"golang.org/x/crypto/bcrypt"
)

// Event subjects published by the service.
const (
	SubjectPostCreated    = "post.created"
	SubjectPostDeleted    = "post.deleted"
	SubjectPostLiked      = "post.liked"
	SubjectCommentCreated = "comment.created"
)

// bcrypt only hashes the first 72 bytes and refuses anything longer.
const maxPasswordBytes = 72

type Service struct {
	repo     Repository
	images   ImageStore
	events   EventPublisher
	hashCost int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func NewService(repo Repository, images ImageStore, opts ...Option) *Service {
	s := &Service{repo: repo, images: images, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Signup(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("Username and password are required.")
	}
	if len(password) > maxPasswordBytes {
		return nil, invalid("Password must be at most 72 bytes.")
	}

	if _, err := s.repo.FindUserByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Username: username, Password: string(hash)}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// CreatePost stores a post owned by userID. A nil image means the post has none.
func (s *Service) CreatePost(ctx context.Context, userID string, in models.PostCreate, image *multipart.FileHeader) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("Title is required.")
	}

	post := &models.Post{
		UserID:  userID,
		Title:   title,
		Caption: strings.TrimSpace(in.Caption),
		Hash:    strings.TrimSpace(in.Hash),
	}

	if image != nil {
		ref, err := s.images.Save(ctx, image)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return nil, err
			}
			return nil, fmt.Errorf("uploading image: %w", err)
		}
		post.ImageURL = ref
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		if post.ImageURL != "" {
			s.removeImage(ctx, userID, post.ImageURL)
		}
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.publish(ctx, SubjectPostCreated, PostEvent{PostID: post.ID, UserID: userID, Title: post.Title, ImageURL: post.ImageURL})
	return post, nil
}

// DeletePost removes a post, its comments and likes. Only the author may do so.
func (s *Service) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := s.repo.FindPost(ctx, postID)
	if err != nil {
		return err
	}
	if !post.OwnedBy(userID) {
		return ErrForbidden
	}

	if err := s.repo.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if post.ImageURL != "" {
		s.removeImage(ctx, userID, post.ImageURL)
	}

	s.publish(ctx, SubjectPostDeleted, PostEvent{PostID: postID, UserID: userID})
	return nil
}

func (s *Service) AddComment(ctx context.Context, postID, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("Comment cannot be empty.")
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, SubjectCommentCreated, CommentEvent{CommentID: comment.ID, PostID: postID, UserID: userID, Content: content})
	return comment, nil
}

func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	liked, err := s.repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	s.publish(ctx, SubjectPostLiked, LikeEvent{PostID: postID, UserID: userID, Liked: liked})
	return liked, nil
}

func (s *Service) removeImage(ctx context.Context, userID, ref string) {
	if err := s.images.Remove(ctx, ref); err != nil {
		utils.LogErrorWithUser(userID, err, "Error removing image "+ref)
	}
}

func (s *Service) publish(ctx context.Context, subject string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		utils.LogError(err, "Error publishing "+subject)
	}
}
