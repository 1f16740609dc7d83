package domain

import "time"

// Post is a text entry published by a user, optionally assigned to a Group.
// PubDate is assigned at creation time and is the descending sort key for
// every listing. Author and ID are immutable once the post exists.
type Post struct {
	ID       int    `json:"id"`
	Text     string `json:"text" gorm:"notNull"`
	AuthorID int    `json:"author_id" gorm:"notNull;index"`
	Author   User   `json:"author"`
	GroupID  *int   `json:"group_id,omitempty" gorm:"index"`
	Group    *Group `json:"group,omitempty"`

	PubDate time.Time `json:"pub_date" gorm:"index"`

	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Images   []Image   `json:"images" gorm:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}

// PostService is a set of methods to manipulate and work with the Post model.
// The listing methods return posts ordered by PubDate descending, with the
// Author and Group relations resolved in the same query.
type PostService interface {
	ByID(id int) (*Post, error)
	All() ([]Post, error)
	ByGroupID(groupID int) ([]Post, error)
	ByAuthorID(authorID int) ([]Post, error)
	ByFollowed(followerID int) ([]Post, error)
	CountByAuthor(authorID int) (int, error)
	Create(post *Post) error
	Update(post *Post) error
}

// CanEditPost reports whether the acting user may mutate the given post.
// Only the post's author may.
func CanEditPost(u *User, p *Post) bool {
	return u != nil && p != nil && u.ID == p.AuthorID
}
