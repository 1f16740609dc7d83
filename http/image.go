package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bloghub/auth"
	"bloghub/domain"
	"bloghub/errs"
)

func (s *Server) registerImageRoutes(r *mux.Router) {
	// Attach an image to an existing post.
	r.HandleFunc("/posts/{id:[0-9]+}/image", s.requireAuth(s.handleUploadPostImage)).Methods("POST")
}

// handleUploadPostImage handles the route "POST /posts/{id}/image".
// It stores an uploaded image on disk, keyed by the post it belongs to, and
// redirects to the post's detail page. Only the post's author may attach
// images.
func (s *Server) handleUploadPostImage(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromRoute(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := auth.GetUser(r.Context())
	if !domain.CanEditPost(user, post) {
		errs.ReturnError(w, r, errs.Errorf(errs.EFORBIDDEN, "You are not allowed to edit this post."))
		return
	}

	// Parse the data to be uploaded.
	if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid upload data."))
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "No image provided."))
		return
	}

	// Open the image.
	file, err := files[0].Open()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	defer file.Close()

	// Save the image to disk (includes validation / normalization).
	img := &domain.Image{
		OwnerType: domain.OwnerTypePost,
		OwnerID:   post.ID,
		File:      file,
		Filename:  files[0].Filename,
	}
	if err := s.is.Create(img); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusFound)
}
