package blog

type PostEvent struct {
	PostID   string `json:"postId"`
	UserID   string `json:"userId"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type CommentEvent struct {
	CommentID string `json:"commentId"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
}

type LikeEvent struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"`
	Liked  bool   `json:"liked"`
}
