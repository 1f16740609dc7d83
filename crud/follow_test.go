package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/domain"
	"bloghub/errs"
)

func TestFollowCreateAndExists(t *testing.T) {
	db := setupTestDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, fs.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))

	following, err := fs.Exists(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The relation is directed.
	following, err = fs.Exists(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowSelfRejected(t *testing.T) {
	db := setupTestDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "alice")

	err := fs.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: alice.ID})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestFollowTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, fs.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))
	err := fs.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID})
	require.Error(t, err)
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
}

func TestFollowUnknownUserRejected(t *testing.T) {
	db := setupTestDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "alice")

	err := fs.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: 999})
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestFollowDelete(t *testing.T) {
	db := setupTestDB(t)
	fs := NewFollowService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, fs.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))
	require.NoError(t, fs.Delete(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))

	following, err := fs.Exists(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Deleting a follow that doesn't exist reports invalid.
	err = fs.Delete(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}
