package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloghub/auth"
	"bloghub/domain"
	"bloghub/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	// Follow / unfollow an author.
	r.HandleFunc("/profile/{username}/follow", s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/profile/{username}/unfollow", s.requireAuth(s.handleDeleteFollow)).Methods("POST")
}

// handleCreateFollow handles the route "POST /profile/{username}/follow".
// It subscribes the authed user to the addressed author's posts and redirects
// back to the author's profile. Following an already followed author, or
// yourself, is a no-op rather than an error.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	follower := auth.GetUser(r.Context())
	follow := &domain.Follow{
		FollowerID: follower.ID,
		FollowedID: author.ID,
	}
	if err := s.fs.Create(follow); err != nil &&
		errs.ErrorCode(err) != errs.ECONFLICT && errs.ErrorCode(err) != errs.EINVALID {
		errs.ReturnError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+author.Username, http.StatusFound)
}

// handleDeleteFollow handles the route "POST /profile/{username}/unfollow".
// It removes the authed user's subscription to the addressed author and
// redirects back to the author's profile. Unfollowing an author that isn't
// followed is a no-op rather than an error.
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	follower := auth.GetUser(r.Context())
	follow := &domain.Follow{
		FollowerID: follower.ID,
		FollowedID: author.ID,
	}
	if err := s.fs.Delete(follow); err != nil && errs.ErrorCode(err) != errs.EINVALID {
		errs.ReturnError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+author.Username, http.StatusFound)
}
