package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloghub/auth"
	"bloghub/domain"
	"bloghub/errs"
	"bloghub/pagination"
)

func (s *Server) registerFeedRoutes(r *mux.Router) {
	// Browse all posts.
	r.HandleFunc("/", s.handleIndex).Methods("GET")

	// Browse the posts of a single group.
	r.HandleFunc("/group/{slug}", s.handleGroupFeed).Methods("GET")

	// Browse the posts of a single author.
	r.HandleFunc("/profile/{username}", s.handleProfileFeed).Methods("GET")

	// Browse the posts of the authors the authed user follows.
	r.HandleFunc("/follow", s.requireAuth(s.handleFollowedFeed)).Methods("GET")
}

// handleIndex handles the route "GET /".
// It returns the global feed: every post, newest first, paginated.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.ps.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	items, page := s.paginate(r, posts)
	s.render(w, r, &FeedView{
		Posts: newPostViews(items),
		Page:  page,
	})
}

// handleGroupFeed handles the route "GET /group/{slug}".
// It resolves the group by slug (404 on a miss) and returns its posts,
// newest first, paginated.
func (s *Server) handleGroupFeed(w http.ResponseWriter, r *http.Request) {
	group, err := s.gs.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	posts, err := s.ps.ByGroupID(group.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	items, page := s.paginate(r, posts)
	groupView := newGroupView(*group)
	s.render(w, r, &FeedView{
		Posts:       newPostViews(items),
		Page:        page,
		Group:       &groupView,
		IsGroupList: true,
	})
}

// handleProfileFeed handles the route "GET /profile/{username}".
// It resolves the author by username (404 on a miss) and returns their posts,
// newest first, paginated, along with the author's total post count and
// whether the viewer already follows them.
func (s *Server) handleProfileFeed(w http.ResponseWriter, r *http.Request) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	posts, err := s.ps.ByAuthorID(author.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	count, err := s.ps.CountByAuthor(author.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	var following bool
	if viewer := auth.GetUser(r.Context()); viewer != nil && viewer.ID != author.ID {
		following, err = s.fs.Exists(viewer.ID, author.ID)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
	}

	items, page := s.paginate(r, posts)
	s.render(w, r, &FeedView{
		Posts: newPostViews(items),
		Page:  page,
		Author: &AuthorView{
			Username:  author.Username,
			PostCount: count,
			Following: following,
		},
		IsProfile: true,
	})
}

// handleFollowedFeed handles the route "GET /follow".
// It returns the posts of every author the authed user follows,
// newest first, paginated.
func (s *Server) handleFollowedFeed(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	posts, err := s.ps.ByFollowed(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	items, page := s.paginate(r, posts)
	s.render(w, r, &FeedView{
		Posts:      newPostViews(items),
		Page:       page,
		IsFollowed: true,
	})
}

// paginate applies the request's page parameter to an ordered post listing.
func (s *Server) paginate(r *http.Request, posts []domain.Post) ([]domain.Post, pagination.PageInfo) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))
	return pagination.Paginate(posts, s.pageSize, page)
}
