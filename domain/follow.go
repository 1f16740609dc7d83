package domain

import "time"

// Follow represents a self-referential many-to-many relationship between two
// users. A Follow is created when one user decides to follow another user's
// posts. The FollowerID is the ID of the user that follows, the FollowedID is
// the ID of the user being followed. A user cannot follow the same author
// twice and cannot follow themself.
type Follow struct {
	ID         int  `json:"id"`
	FollowerID int  `json:"-" gorm:"notNull;index"`
	Follower   User `json:"follower"`
	FollowedID int  `json:"-" gorm:"notNull;index"`
	Followed   User `json:"followed"`

	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	Exists(followerID, followedID int) (bool, error)
}
