package http

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	services, ts := newTestApp(t)
	author := seedAuthor(t, services, "alice")
	seedPosts(t, services, author, 1)
	posts, err := services.Post.All()
	require.NoError(t, err)
	postPath := "/posts/" + strconv.Itoa(posts[0].ID)

	bob := newTestClient(t, ts)
	bob.signup("bob")

	resp := bob.postForm(postPath+"/comment", url.Values{"text": {"nice post"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, postPath, location(t, resp))

	resp = bob.postForm(postPath+"/comment", url.Values{"text": {"another one"}})
	resp.Body.Close()

	// Comments come back oldest first with their authors resolved.
	detail := decodeView[DetailView](t, bob.get(postPath))
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "nice post", detail.Comments[0].Text)
	assert.Equal(t, "another one", detail.Comments[1].Text)
	assert.Equal(t, "bob", detail.Comments[0].Author)
	assert.False(t, detail.Comments[0].Created.IsZero())
}

func TestCreateCommentEmptyText(t *testing.T) {
	services, ts := newTestApp(t)
	author := seedAuthor(t, services, "alice")
	seedPosts(t, services, author, 1)
	posts, err := services.Post.All()
	require.NoError(t, err)
	postPath := "/posts/" + strconv.Itoa(posts[0].ID)

	bob := newTestClient(t, ts)
	bob.signup("bob")

	resp := bob.postForm(postPath+"/comment", url.Values{"text": {"  "}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decodeView[DetailView](t, resp)
	assert.Contains(t, detail.CommentForm.Errors, "text")
	assert.Empty(t, detail.Comments)
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	services, ts := newTestApp(t)
	author := seedAuthor(t, services, "alice")
	seedPosts(t, services, author, 1)
	posts, err := services.Post.All()
	require.NoError(t, err)

	c := newTestClient(t, ts)
	resp := c.postForm("/posts/"+strconv.Itoa(posts[0].ID)+"/comment", url.Values{"text": {"hi"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, location(t, resp), "/auth/login")
}

func TestCreateCommentUnknownPost(t *testing.T) {
	_, ts := newTestApp(t)
	bob := newTestClient(t, ts)
	bob.signup("bob")

	resp := bob.postForm("/posts/9999/comment", url.Values{"text": {"hi"}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
