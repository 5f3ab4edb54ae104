package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog-app/blog"
	"blog-app/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory blog.Repository for service and handler tests.
type MemoryStore struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[string]models.User
	posts    map[string]models.Post
	comments map[string]models.Comment
	likes    map[string]models.Like
}

var _ blog.Repository = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clock:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		users:    map[string]models.User{},
		posts:    map[string]models.Post{},
		comments: map[string]models.Comment{},
		likes:    map[string]models.Like{},
	}
}

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (m *MemoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return blog.ErrDuplicateUsername
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = m.tick()
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, blog.ErrNotFound
}

func (m *MemoryStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) ListPosts(_ context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := make([]models.Post, 0, len(m.posts))
	for id := range m.posts {
		posts = append(posts, m.loadPost(id))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *MemoryStore) FindPost(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return nil, blog.ErrNotFound
	}
	post := m.loadPost(id)
	return &post, nil
}

func (m *MemoryStore) loadPost(id string) models.Post {
	post := m.posts[id]
	post.Author = m.users[post.UserID]
	post.Comments = nil
	post.Likes = nil
	for _, c := range m.comments {
		if c.PostID == id {
			c.Author = m.users[c.UserID]
			post.Comments = append(post.Comments, c)
		}
	}
	sort.Slice(post.Comments, func(i, j int) bool {
		return post.Comments[i].CreatedAt.Before(post.Comments[j].CreatedAt)
	})
	for _, l := range m.likes {
		if l.PostID == id {
			post.Likes = append(post.Likes, l)
		}
	}
	sort.Slice(post.Likes, func(i, j int) bool {
		return post.Likes[i].CreatedAt.Before(post.Likes[j].CreatedAt)
	})
	return post
}

func (m *MemoryStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = m.tick()
	stored := *post
	stored.Author, stored.Comments, stored.Likes = models.User{}, nil, nil
	m.posts[post.ID] = stored
	return nil
}

func (m *MemoryStore) DeletePost(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return blog.ErrNotFound
	}
	delete(m.posts, id)
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	for lid, l := range m.likes {
		if l.PostID == id {
			delete(m.likes, lid)
		}
	}
	return nil
}

func (m *MemoryStore) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[comment.PostID]; !ok {
		return blog.ErrNotFound
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = m.tick()
	m.comments[comment.ID] = *comment
	return nil
}

func (m *MemoryStore) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[postID]; !ok {
		return false, blog.ErrNotFound
	}
	for id, l := range m.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(m.likes, id)
			return false, nil
		}
	}
	like := models.Like{ID: uuid.NewString(), PostID: postID, UserID: userID, CreatedAt: m.tick()}
	m.likes[like.ID] = like
	return true, nil
}

// CommentCount is the number of comments stored across all posts.
func (m *MemoryStore) CommentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.comments)
}
