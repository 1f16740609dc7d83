package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"bloghub/auth"
	"bloghub/domain"
	"bloghub/errs"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	// Show the empty post form / submit a new post.
	r.HandleFunc("/create", s.requireAuth(s.handleCreatePostForm)).Methods("GET")
	r.HandleFunc("/create", s.requireAuth(s.handleCreatePost)).Methods("POST")

	// Show a single post.
	r.HandleFunc("/posts/{id:[0-9]+}", s.handlePostDetail).Methods("GET")

	// Show the pre-filled post form / submit changes to an existing post.
	r.HandleFunc("/posts/{id:[0-9]+}/edit", s.requireAuth(s.handleEditPostForm)).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/edit", s.requireAuth(s.handleEditPost)).Methods("POST")
}

// handleCreatePostForm handles the route "GET /create".
// It renders the empty post form together with the available group choices.
func (s *Server) handleCreatePostForm(w http.ResponseWriter, r *http.Request) {
	s.renderPostForm(w, r, PostFormValues{}, nil, 0)
}

// handleCreatePost handles the route "POST /create".
// It validates the submitted text and group, persists a new post with the
// authed user as its author, and redirects to that author's profile feed.
// Invalid input re-renders the form with the submitted values preserved.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())

	values, groupID, err := s.parsePostForm(r)
	if err != nil {
		s.renderPostFormError(w, r, values, err, 0)
		return
	}

	post := &domain.Post{
		Text:     values.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
	}
	if err := s.ps.Create(post); err != nil {
		s.renderPostFormError(w, r, values, err, 0)
		return
	}

	http.Redirect(w, r, "/profile/"+user.Username, http.StatusFound)
}

// handleEditPostForm handles the route "GET /posts/{id}/edit".
// It renders the post form pre-filled with the post's current values.
// A non-author is silently redirected to their own profile feed.
func (s *Server) handleEditPostForm(w http.ResponseWriter, r *http.Request) {
	post, ok := s.editablePost(w, r)
	if !ok {
		return
	}
	values := PostFormValues{Text: post.Text}
	if post.GroupID != nil {
		values.Group = strconv.Itoa(*post.GroupID)
	}
	s.renderPostForm(w, r, values, nil, post.ID)
}

// handleEditPost handles the route "POST /posts/{id}/edit".
// It validates the submitted text and group and updates the post in place.
// The post's id and author never change. On success it redirects to the
// post's detail page. A non-author is silently redirected to their own
// profile feed without the post being modified.
func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.editablePost(w, r)
	if !ok {
		return
	}

	values, groupID, err := s.parsePostForm(r)
	if err != nil {
		s.renderPostFormError(w, r, values, err, post.ID)
		return
	}

	post.Text = values.Text
	post.GroupID = groupID
	if err := s.ps.Update(post); err != nil {
		s.renderPostFormError(w, r, values, err, post.ID)
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusFound)
}

// handlePostDetail handles the route "GET /posts/{id}".
// It returns the full view of a single post: the post with its author and
// group resolved, the author's total post count, attached images, the
// comments oldest first, and the comment form entry.
func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	view, err := s.buildDetailView(r, post, "", nil)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.render(w, r, view)
}

// postFromRoute fetches the post addressed by the route's id parameter.
func (s *Server) postFromRoute(r *http.Request) (*domain.Post, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, errs.Errorf(errs.EINVALID, "Invalid id format.")
	}
	return s.ps.ByID(id)
}

// editablePost fetches the post addressed by the route and enforces the edit
// authorization rule: only the post's author may proceed. Anyone else gets a
// silent redirect to their own profile feed, per the edit contract. The post
// is left untouched in that case. Returns ok=false if a response was written.
func (s *Server) editablePost(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	post, err := s.postFromRoute(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return nil, false
	}
	user := auth.GetUser(r.Context())
	if !domain.CanEditPost(user, post) {
		http.Redirect(w, r, "/profile/"+user.Username, http.StatusFound)
		return nil, false
	}
	return post, true
}

// parsePostForm reads the submitted post form. The group choice is optional,
// an unparsable value is reported as a field error.
func (s *Server) parsePostForm(r *http.Request) (PostFormValues, *int, error) {
	if err := r.ParseForm(); err != nil {
		return PostFormValues{}, nil, errs.Errorf(errs.EINVALID, "Invalid form data.")
	}
	values := PostFormValues{
		Text:  r.PostFormValue("text"),
		Group: strings.TrimSpace(r.PostFormValue("group")),
	}
	if values.Group == "" {
		return values, nil, nil
	}
	groupID, err := strconv.Atoi(values.Group)
	if err != nil {
		return values, nil, errs.FieldErrorf("group", errs.EINVALID, "Select a valid group.")
	}
	return values, &groupID, nil
}

// renderPostFormError re-renders the post form for a failed submission,
// preserving the submitted values. Validation failures map to field-level
// messages and respond 200, anything else passes through as an error response.
func (s *Server) renderPostFormError(w http.ResponseWriter, r *http.Request, values PostFormValues, err error, postID int) {
	if errs.ErrorCode(err) != errs.EINVALID {
		errs.ReturnError(w, r, err)
		return
	}
	field := errs.ErrorField(err)
	if field == "" {
		field = "text"
	}
	s.renderPostForm(w, r, values, map[string]string{field: errs.ErrorMessage(err)}, postID)
}

// renderPostForm renders the create/edit form view-model. A non-zero postID
// marks the edit variant.
func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, values PostFormValues, fieldErrors map[string]string, postID int) {
	groups, err := s.gs.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	s.render(w, r, &PostFormView{
		Values: values,
		Errors: fieldErrors,
		Groups: lo.Map(groups, func(g domain.Group, _ int) GroupView {
			return newGroupView(g)
		}),
		IsEdit:    postID != 0,
		PostID:    postID,
		CSRFToken: csrf.Token(r),
	})
}

// buildDetailView assembles the detail view of a post, optionally carrying a
// failed comment submission back to the renderer.
func (s *Server) buildDetailView(r *http.Request, post *domain.Post, commentText string, commentErrors map[string]string) (*DetailView, error) {
	count, err := s.ps.CountByAuthor(post.AuthorID)
	if err != nil {
		return nil, err
	}
	comments, err := s.cs.ByPostID(post.ID)
	if err != nil {
		return nil, err
	}
	images, err := s.is.ByOwner(domain.OwnerTypePost, post.ID)
	if err != nil {
		return nil, err
	}
	post.Images = images
	return &DetailView{
		Post:            newPostView(*post),
		AuthorPostCount: count,
		Comments:        newCommentViews(comments),
		CommentForm: CommentFormView{
			Text:      commentText,
			Errors:    commentErrors,
			CSRFToken: csrf.Token(r),
		},
	}, nil
}
