package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bloghub/auth"
	"bloghub/domain"
	"bloghub/errs"
)

func (s *Server) registerCommentRoutes(r *mux.Router) {
	// Comment on an existing post.
	r.HandleFunc("/posts/{id:[0-9]+}/comment", s.requireAuth(s.handleCreateComment)).Methods("POST")
}

// handleCreateComment handles the route "POST /posts/{id}/comment".
// It creates a comment bound to the addressed post and the authed user, then
// redirects back to the post's detail page. An empty comment re-renders the
// detail view with a field error and nothing persisted.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}
	text := r.PostFormValue("text")

	user := auth.GetUser(r.Context())
	comment := &domain.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     text,
	}
	if err := s.cs.Create(comment); err != nil {
		if errs.ErrorCode(err) != errs.EINVALID {
			errs.ReturnError(w, r, err)
			return
		}
		view, buildErr := s.buildDetailView(r, post, text, map[string]string{
			"text": errs.ErrorMessage(err),
		})
		if buildErr != nil {
			errs.ReturnError(w, r, buildErr)
			return
		}
		s.render(w, r, view)
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusFound)
}
