package domain

import "time"

// Group is a named topic that posts can be assigned to. Groups are created
// out-of-band (seed tooling) and are referenced, never mutated, by posts.
// The Slug is the unique, url-safe identifier a group is looked up by.
type Group struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug" gorm:"notNull;uniqueIndex"`
	Title       string `json:"title" gorm:"notNull"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

// GroupService is a set of methods to manipulate and work with the Group model.
type GroupService interface {
	ByID(id int) (*Group, error)
	BySlug(slug string) (*Group, error)
	All() ([]Group, error)
	Create(group *Group) error
}
