package http

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/domain"
)

func TestCreatePost(t *testing.T) {
	services, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	group := &domain.Group{Title: "General", Slug: "general"}
	require.NoError(t, services.Group.Create(group))

	resp := c.postForm("/create", url.Values{
		"text":  {"hello world"},
		"group": {strconv.Itoa(group.ID)},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", location(t, resp))

	// The post shows up in the global feed with its relations resolved.
	feed := decodeView[FeedView](t, c.get("/"))
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "hello world", feed.Posts[0].Text)
	assert.Equal(t, "alice", feed.Posts[0].Author)
	require.NotNil(t, feed.Posts[0].Group)
	assert.Equal(t, "general", feed.Posts[0].Group.Slug)
	assert.False(t, feed.Posts[0].PubDate.IsZero())
}

func TestCreatePostWithoutGroup(t *testing.T) {
	_, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	resp := c.postForm("/create", url.Values{"text": {"no group here"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	feed := decodeView[FeedView](t, c.get("/"))
	require.Len(t, feed.Posts, 1)
	assert.Nil(t, feed.Posts[0].Group)
}

func TestCreatePostEmptyText(t *testing.T) {
	_, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	resp := c.postForm("/create", url.Values{"text": {"   "}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	form := decodeView[PostFormView](t, resp)
	assert.Contains(t, form.Errors, "text")
	assert.False(t, form.IsEdit)

	// Nothing was persisted.
	feed := decodeView[FeedView](t, c.get("/"))
	assert.Empty(t, feed.Posts)
}

func TestCreatePostBadGroupChoice(t *testing.T) {
	_, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	resp := c.postForm("/create", url.Values{
		"text":  {"some text"},
		"group": {"not-a-number"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	form := decodeView[PostFormView](t, resp)
	assert.Contains(t, form.Errors, "group")
	// The submitted values survive the round trip.
	assert.Equal(t, "some text", form.Values.Text)
}

func TestPostDetail(t *testing.T) {
	services, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	resp := c.postForm("/create", url.Values{"text": {"first"}})
	resp.Body.Close()
	resp = c.postForm("/create", url.Values{"text": {"second"}})
	resp.Body.Close()

	posts, err := services.Post.All()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// Newest first, so the detail target is the older one.
	detail := decodeView[DetailView](t, c.get("/posts/"+strconv.Itoa(posts[1].ID)))
	assert.Equal(t, "first", detail.Post.Text)
	assert.Equal(t, "alice", detail.Post.Author)
	assert.Equal(t, 2, detail.AuthorPostCount)
	assert.Empty(t, detail.Comments)
	assert.NotEmpty(t, detail.CommentForm.CSRFToken)
}

func TestPostDetailNotFound(t *testing.T) {
	_, ts := newTestApp(t)
	c := newTestClient(t, ts)

	resp := c.get("/posts/9999")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEditPost(t *testing.T) {
	services, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	group := &domain.Group{Title: "Tech", Slug: "tech"}
	require.NoError(t, services.Group.Create(group))

	resp := c.postForm("/create", url.Values{"text": {"original"}})
	resp.Body.Close()
	posts, err := services.Post.All()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	id := posts[0].ID

	// The edit form comes back pre-filled.
	form := decodeView[PostFormView](t, c.get("/posts/"+strconv.Itoa(id)+"/edit"))
	assert.True(t, form.IsEdit)
	assert.Equal(t, id, form.PostID)
	assert.Equal(t, "original", form.Values.Text)

	resp = c.postForm("/posts/"+strconv.Itoa(id)+"/edit", url.Values{
		"text":  {"revised"},
		"group": {strconv.Itoa(group.ID)},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/posts/"+strconv.Itoa(id), location(t, resp))

	detail := decodeView[DetailView](t, c.get("/posts/"+strconv.Itoa(id)))
	assert.Equal(t, "revised", detail.Post.Text)
	require.NotNil(t, detail.Post.Group)
	assert.Equal(t, "tech", detail.Post.Group.Slug)
}

func TestEditPostMovesBetweenGroupFeeds(t *testing.T) {
	services, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	travel := &domain.Group{Title: "Travel", Slug: "travel"}
	require.NoError(t, services.Group.Create(travel))
	tech := &domain.Group{Title: "Tech", Slug: "tech"}
	require.NoError(t, services.Group.Create(tech))

	resp := c.postForm("/create", url.Values{
		"text":  {"moving post"},
		"group": {strconv.Itoa(travel.ID)},
	})
	resp.Body.Close()
	posts, err := services.Post.All()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	id := posts[0].ID

	feed := decodeView[FeedView](t, c.get("/group/travel"))
	require.Len(t, feed.Posts, 1)

	resp = c.postForm("/posts/"+strconv.Itoa(id)+"/edit", url.Values{
		"text":  {"moving post"},
		"group": {strconv.Itoa(tech.ID)},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	// The old group's feed no longer lists the post, the new one does, and the
	// post itself keeps its identity.
	feed = decodeView[FeedView](t, c.get("/group/travel"))
	assert.Empty(t, feed.Posts)

	feed = decodeView[FeedView](t, c.get("/group/tech"))
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, id, feed.Posts[0].ID)
	assert.Equal(t, "alice", feed.Posts[0].Author)
}

func TestEditPostByNonAuthor(t *testing.T) {
	services, ts := newTestApp(t)

	alice := newTestClient(t, ts)
	alice.signup("alice")
	resp := alice.postForm("/create", url.Values{"text": {"alice's post"}})
	resp.Body.Close()

	posts, err := services.Post.All()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	id := posts[0].ID

	// Bob is bounced to his own profile, both on the form and submission.
	bob := newTestClient(t, ts)
	bob.signup("bob")

	resp = bob.get("/posts/" + strconv.Itoa(id) + "/edit")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob", location(t, resp))

	resp = bob.postForm("/posts/"+strconv.Itoa(id)+"/edit", url.Values{"text": {"hijacked"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob", location(t, resp))

	post, err := services.Post.ByID(id)
	require.NoError(t, err)
	assert.Equal(t, "alice's post", post.Text)
}

func TestEditPostNotFound(t *testing.T) {
	_, ts := newTestApp(t)
	c := newTestClient(t, ts)
	c.signup("alice")

	resp := c.get("/posts/424242/edit")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
