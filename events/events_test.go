package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blog-app/blog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}

func TestNatsPublisher_Publish(t *testing.T) {
	conn := &fakeConn{}
	p := NewNatsPublisher(conn)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	err := p.Publish(context.Background(), blog.SubjectPostLiked, blog.LikeEvent{PostID: "p1", UserID: "u1", Liked: true})
	require.NoError(t, err)

	assert.Equal(t, "blog.post.liked", conn.subject)
	var got map[string]any
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, "post.liked", got["subject"])
	assert.Equal(t, "2024-05-01T10:00:00Z", got["timestamp"])
	assert.Equal(t, true, got["payload"].(map[string]any)["liked"])
}

func TestNatsPublisher_PropagatesErrors(t *testing.T) {
	p := NewNatsPublisher(&fakeConn{err: errors.New("nats: connection closed")})

	assert.Error(t, p.Publish(context.Background(), blog.SubjectPostCreated, blog.PostEvent{PostID: "p1"}))
}

func TestNop(t *testing.T) {
	var p blog.EventPublisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), "anything", nil))
}
