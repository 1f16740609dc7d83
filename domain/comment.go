package domain

import "time"

// Comment belongs to exactly one Post and is removed with it when the post
// gets deleted.
type Comment struct {
	ID       int    `json:"id"`
	PostID   int    `json:"post_id" gorm:"notNull;index"`
	AuthorID int    `json:"author_id" gorm:"notNull"`
	Author   User   `json:"author"`
	Text     string `json:"text" gorm:"notNull"`

	Created time.Time `json:"created" gorm:"index"`
}

// CommentService is a set of methods to manipulate and work with the Comment model.
type CommentService interface {
	ByPostID(postID int) ([]Comment, error)
	Create(comment *Comment) error
}
