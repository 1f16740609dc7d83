package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bloghub/auth"
	"bloghub/crud"
	"bloghub/domain"
	"bloghub/errs"
)

// Server provides the http functionality of this app, namely routing, request
// handling, and middleware. It performs authentication and authorization
// before handing things over to one of the crud services, and hands the
// resulting view-models to the rendering boundary as json.
type Server struct {
	router   *mux.Router
	logger   *zap.Logger
	pageSize int

	us domain.UserService
	gs domain.GroupService
	ps domain.PostService
	cs domain.CommentService
	fs domain.FollowService
	is domain.ImageService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(isProd bool, csrfKey string, pageSize int, logger *zap.Logger, services *crud.Services) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		logger:   logger,
		pageSize: pageSize,
		us:       services.User,
		gs:       services.Group,
		ps:       services.Post,
		cs:       services.Comment,
		fs:       services.Follow,
		is:       services.Image,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the publishing system.
	s.registerFeedRoutes(s.router)
	s.registerPostRoutes(s.router)
	s.registerCommentRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerImageRoutes(s.router)

	// Set up middleware that needs to run on every request. A CSRF token is
	// issued when the client requests one of the form views with GET.
	csrfMw := csrf.Protect([]byte(csrfKey), csrf.Secure(isProd), csrf.Path("/"))
	s.router.Use(csrfMw, setContentTypeJSON, s.logRequest, s.authUser)
	return s
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	addr := "localhost:" + strconv.Itoa(port)
	s.logger.Info("server listening", zap.String("addr", addr))
	s.logger.Fatal("server exited", zap.Error(http.ListenAndServe(addr, s.router)))
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// The logRequest middleware logs every request with its response status and duration.
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// The authUser middleware tries to identify the requesting user through the
// remember token cookie and stashes them in the request context. Anonymous
// requests pass through untouched.
func (s *Server) authUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("remember_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth gates handlers that need a logged-in user. Anonymous requests
// are redirected to the login page, carrying the originally requested path in
// the next parameter so the login flow can send them back.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			v := url.Values{}
			v.Set("next", r.URL.Path)
			http.Redirect(w, r, "/auth/login?"+v.Encode(), http.StatusFound)
			return
		}
		next(w, r)
	}
}

// render writes a view-model as json.
func (s *Server) render(w http.ResponseWriter, r *http.Request, view interface{}) {
	if err := json.NewEncoder(w).Encode(view); err != nil {
		errs.LogError(r, err)
	}
}
