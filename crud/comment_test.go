package crud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/domain"
	"bloghub/errs"
)

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCommentService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPosts(t, db, alice, nil, 1)[0]

	comment := &domain.Comment{
		PostID:   post.ID,
		AuthorID: bob.ID,
		Text:     "nice post",
	}
	require.NoError(t, cs.Create(comment))
	assert.NotZero(t, comment.ID)
	assert.False(t, comment.Created.IsZero())
	assert.Equal(t, "bob", comment.Author.Username)
}

func TestCommentsOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCommentService(db)
	alice := createTestUser(t, db, "alice")
	post := createTestPosts(t, db, alice, nil, 1)[0]

	base := time.Now()
	for i, text := range []string{"first", "second", "third"} {
		require.NoError(t, cs.Create(&domain.Comment{
			PostID:   post.ID,
			AuthorID: alice.ID,
			Text:     text,
			Created:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	comments, err := cs.ByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "third", comments[2].Text)
}

func TestCreateCommentEmptyText(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCommentService(db)
	alice := createTestUser(t, db, "alice")
	post := createTestPosts(t, db, alice, nil, 1)[0]

	err := cs.Create(&domain.Comment{PostID: post.ID, AuthorID: alice.ID, Text: " "})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, "text", errs.ErrorField(err))

	comments, err := cs.ByPostID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCommentService(db)
	alice := createTestUser(t, db, "alice")

	err := cs.Create(&domain.Comment{PostID: 999, AuthorID: alice.ID, Text: "hello"})
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
