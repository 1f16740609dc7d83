package http

import (
	"time"

	"github.com/samber/lo"

	"bloghub/domain"
	"bloghub/pagination"
)

// The view-models below are what the handlers hand to the rendering boundary.
// Discriminator flags (IsEdit, IsGroupList, IsProfile) tell the renderer
// which variant of a shared template to produce.

type GroupView struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type PostView struct {
	ID      int        `json:"id"`
	Text    string     `json:"text"`
	Author  string     `json:"author"`
	Group   *GroupView `json:"group,omitempty"`
	PubDate time.Time  `json:"pub_date"`
	Images  []string   `json:"images,omitempty"`
}

type AuthorView struct {
	Username  string `json:"username"`
	PostCount int    `json:"post_count"`
	Following bool   `json:"following"`
}

// FeedView is the paginated listing view shared by the global, group, author
// and followed feeds.
type FeedView struct {
	Posts       []PostView          `json:"posts"`
	Page        pagination.PageInfo `json:"page"`
	Group       *GroupView          `json:"group,omitempty"`
	Author      *AuthorView         `json:"author,omitempty"`
	IsGroupList bool                `json:"is_group_list,omitempty"`
	IsProfile   bool                `json:"is_profile,omitempty"`
	IsFollowed  bool                `json:"is_followed_feed,omitempty"`
}

type PostFormValues struct {
	Text  string `json:"text"`
	Group string `json:"group"`
}

// PostFormView backs both the create and the edit form. IsEdit distinguishes
// the two without a separate template.
type PostFormView struct {
	Values    PostFormValues    `json:"values"`
	Errors    map[string]string `json:"errors,omitempty"`
	Groups    []GroupView       `json:"groups"`
	IsEdit    bool              `json:"is_edit"`
	PostID    int               `json:"post_id,omitempty"`
	CSRFToken string            `json:"csrf_token"`
}

type CommentView struct {
	ID      int       `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type CommentFormView struct {
	Text      string            `json:"text"`
	Errors    map[string]string `json:"errors,omitempty"`
	CSRFToken string            `json:"csrf_token"`
}

// DetailView is a single post's full view.
type DetailView struct {
	Post            PostView        `json:"post"`
	AuthorPostCount int             `json:"author_post_count"`
	Comments        []CommentView   `json:"comments"`
	CommentForm     CommentFormView `json:"comment_form"`
}

type SignupFormView struct {
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Errors    map[string]string `json:"errors,omitempty"`
	CSRFToken string            `json:"csrf_token"`
}

type LoginFormView struct {
	Username  string            `json:"username"`
	Next      string            `json:"next,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	CSRFToken string            `json:"csrf_token"`
}

func newGroupView(g domain.Group) GroupView {
	return GroupView{
		Slug:        g.Slug,
		Title:       g.Title,
		Description: g.Description,
	}
}

func newPostView(p domain.Post) PostView {
	view := PostView{
		ID:      p.ID,
		Text:    p.Text,
		Author:  p.Author.Username,
		PubDate: p.PubDate,
		Images: lo.Map(p.Images, func(img domain.Image, _ int) string {
			return img.URL
		}),
	}
	if p.Group != nil {
		g := newGroupView(*p.Group)
		view.Group = &g
	}
	return view
}

func newPostViews(posts []domain.Post) []PostView {
	return lo.Map(posts, func(p domain.Post, _ int) PostView {
		return newPostView(p)
	})
}

func newCommentViews(comments []domain.Comment) []CommentView {
	return lo.Map(comments, func(c domain.Comment, _ int) CommentView {
		return CommentView{
			ID:      c.ID,
			Author:  c.Author.Username,
			Text:    c.Text,
			Created: c.Created,
		}
	})
}
