package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanEditPost(t *testing.T) {
	alice := &User{ID: 1, Username: "alice"}
	bob := &User{ID: 2, Username: "bob"}
	post := &Post{ID: 10, AuthorID: 1}

	assert.True(t, CanEditPost(alice, post))
	assert.False(t, CanEditPost(bob, post))
	assert.False(t, CanEditPost(nil, post))
	assert.False(t, CanEditPost(alice, nil))
}
