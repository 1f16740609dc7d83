package domain

import (
	"context"
	"time"
)

// User represents a registered author. Users are created through the auth
// system (signup), everything else in the app only references them.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username" gorm:"notNull;uniqueIndex"`
	Email        string `json:"email" gorm:"notNull;uniqueIndex"`
	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"notNull"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"uniqueIndex"`

	Posts []Post `json:"-" gorm:"foreignKey:AuthorID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	Authenticate(username, password string) (*User, error)
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	ByRemember(token string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
