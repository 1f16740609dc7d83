package crud

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bloghub/domain"
)

// setupTestDB opens a fresh in-memory database with all migrations applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.Post{},
		&domain.Comment{},
		&domain.Follow{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	us := NewUserService(db, "test-pepper", "test-hmac-key")
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	require.NoError(t, us.Create(context.Background(), user))
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *domain.Group {
	t.Helper()
	gs := NewGroupService(db)
	group := &domain.Group{
		Slug:  slug,
		Title: "Group " + slug,
	}
	require.NoError(t, gs.Create(group))
	return group
}

// createTestPosts creates n posts for the given author with strictly
// increasing pub dates, so listing order is deterministic.
func createTestPosts(t *testing.T, db *gorm.DB, author *domain.User, group *domain.Group, n int) []*domain.Post {
	t.Helper()
	ps := NewPostService(db)
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*domain.Post, n)
	for i := 0; i < n; i++ {
		post := &domain.Post{
			Text:     fmt.Sprintf("post %d", i),
			AuthorID: author.ID,
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}
		if group != nil {
			post.GroupID = &group.ID
		}
		require.NoError(t, ps.Create(post))
		posts[i] = post
	}
	return posts
}
