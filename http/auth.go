package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"bloghub/auth"
	"bloghub/domain"
	"bloghub/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/signup", s.handleSignupForm).Methods("GET")
	r.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	r.HandleFunc("/auth/login", s.handleLoginForm).Methods("GET")
	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/auth/logout", s.requireAuth(s.handleLogout)).Methods("POST")
}

// handleSignupForm handles the route "GET /auth/signup".
// It renders the empty signup form, issuing a CSRF token along the way.
func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, &SignupFormView{
		CSRFToken: csrf.Token(r),
	})
}

// handleSignup handles the route "POST /auth/signup".
// It creates a new user record, signs the user in via cookie, and redirects
// to the requested next path. Invalid input re-renders the signup form with
// field-level messages and the submitted values preserved.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}
	user := domain.User{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := s.us.Create(r.Context(), &user); err != nil {
		if errs.ErrorCode(err) != errs.EINVALID {
			errs.ReturnError(w, r, err)
			return
		}
		s.render(w, r, &SignupFormView{
			Username:  user.Username,
			Email:     user.Email,
			Errors:    fieldErrors(err),
			CSRFToken: csrf.Token(r),
		})
		return
	}
	if err := s.signIn(w, r.Context(), &user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, safeNext(r.PostFormValue("next")), http.StatusFound)
}

// handleLoginForm handles the route "GET /auth/login".
// It renders the empty login form, carrying through the next parameter that
// the requireAuth middleware put into the url.
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, &LoginFormView{
		Next:      safeNext(r.URL.Query().Get("next")),
		CSRFToken: csrf.Token(r),
	})
}

// handleLogin handles the route "POST /auth/login".
// It authenticates the submitted credentials, signs the user in via cookie,
// and redirects to the submitted next path, so a login that was forced by the
// requireAuth middleware lands on the originally requested page. Bad
// credentials re-render the login form.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}
	username := r.PostFormValue("username")
	next := safeNext(r.PostFormValue("next"))

	user, err := s.us.Authenticate(username, r.PostFormValue("password"))
	if err != nil {
		if errs.ErrorCode(err) != errs.EINVALID {
			errs.ReturnError(w, r, err)
			return
		}
		s.render(w, r, &LoginFormView{
			Username:  username,
			Next:      next,
			Errors:    map[string]string{"login": errs.ErrorMessage(err)},
			CSRFToken: csrf.Token(r),
		})
		return
	}
	if err := s.signIn(w, r.Context(), user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// handleLogout handles the route "POST /auth/logout".
// It clears the session cookie, rotates the user's remember token so the old
// cookie value can never be replayed, and redirects to the global feed.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now(),
		HttpOnly: true,
	})

	user := auth.GetUser(r.Context())
	token, err := auth.MakeRememberToken()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user.Remember = token
	if err := s.us.Update(r.Context(), user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// signIn signs the given user in via cookie, generating and persisting a
// fresh remember token if the user object doesn't carry one.
func (s *Server) signIn(w http.ResponseWriter, ctx context.Context, user *domain.User) error {
	if user.Remember == "" {
		token, err := auth.MakeRememberToken()
		if err != nil {
			return err
		}
		user.Remember = token
		if err := s.us.Update(ctx, user); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    user.Remember,
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

// safeNext sanitizes a next redirect target. Only site-local paths pass,
// anything else falls back to the global feed.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// fieldErrors turns a field-level validation error into the error map the
// form views carry.
func fieldErrors(err error) map[string]string {
	field := errs.ErrorField(err)
	if field == "" {
		field = "form"
	}
	return map[string]string{field: errs.ErrorMessage(err)}
}
