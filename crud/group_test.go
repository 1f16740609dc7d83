package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/domain"
	"bloghub/errs"
)

func TestCreateGroupNormalizesSlug(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupService(db)

	group := &domain.Group{Slug: "  Tech-News ", Title: "Tech News"}
	require.NoError(t, gs.Create(group))
	assert.Equal(t, "tech-news", group.Slug)

	got, err := gs.BySlug("tech-news")
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)
}

func TestCreateGroupValidation(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupService(db)

	err := gs.Create(&domain.Group{Slug: "ok", Title: " "})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = gs.Create(&domain.Group{Slug: "", Title: "No Slug"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = gs.Create(&domain.Group{Slug: "bad slug!", Title: "Bad Slug"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestCreateGroupSlugTaken(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupService(db)

	require.NoError(t, gs.Create(&domain.Group{Slug: "tech", Title: "Tech"}))
	err := gs.Create(&domain.Group{Slug: "tech", Title: "Tech Again"})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, "slug", errs.ErrorField(err))
}

func TestGroupBySlugNotFound(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupService(db)

	_, err := gs.BySlug("missing")
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestGroupsOrderedByTitle(t *testing.T) {
	db := setupTestDB(t)
	gs := NewGroupService(db)

	require.NoError(t, gs.Create(&domain.Group{Slug: "zebra", Title: "Zebra"}))
	require.NoError(t, gs.Create(&domain.Group{Slug: "apple", Title: "Apple"}))

	groups, err := gs.All()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Apple", groups[0].Title)
}
