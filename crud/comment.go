package crud

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"bloghub/domain"
	"bloghub/errs"
)

// CommentService manages Comments.
// It implements the domain.CommentService interface.
type CommentService struct {
	commentValidator
}

// commentValidator runs validations on incoming Comment data.
// On success, it passes the data on to commentGorm.
// Otherwise, it returns the error of the validation that has failed.
type commentValidator struct {
	commentGorm
}

// commentGorm runs CRUD operations on the database using incoming Comment data.
// It assumes that data has been validated.
type commentGorm struct {
	db *gorm.DB
}

// NewCommentService returns an instance of CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		commentValidator{
			commentGorm{
				db: db,
			},
		},
	}
}

// Ensure the CommentService struct properly implements the domain.CommentService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.CommentService = &CommentService{}

// Create runs validations needed for creating new Comment database records.
func (cv *commentValidator) Create(comment *domain.Comment) error {
	err := runCommentValFns(comment,
		cv.authorIDValid,
		cv.postExists,
		cv.textNotEmpty,
		cv.createdSetIfUnset)
	if err != nil {
		return err
	}
	return cv.commentGorm.Create(comment)
}

// runCommentValFns runs any number of functions of type commentValFn on the passed in Comment object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runCommentValFns(comment *domain.Comment, fns ...commentValFn) error {
	for _, fn := range fns {
		if err := fn(comment); err != nil {
			return err
		}
	}
	return nil
}

// A commentValFn is any function that takes in a pointer to a domain.Comment object and returns an error.
type commentValFn func(comment *domain.Comment) error

// authorIDValid ensures that the author ID is not empty.
func (cv *commentValidator) authorIDValid(comment *domain.Comment) error {
	if comment.AuthorID <= 0 {
		return errs.Errorf(errs.EINTERNAL, "comment author id is required")
	}
	return nil
}

// postExists makes sure that the commented Post actually exists.
func (cv *commentValidator) postExists(comment *domain.Comment) error {
	err := cv.db.First(&domain.Post{}, "id = ?", comment.PostID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The commented post does not exist.")
		}
		return err
	}
	return nil
}

// textNotEmpty makes sure that the Comment's text is not empty after trimming whitespace.
func (cv *commentValidator) textNotEmpty(comment *domain.Comment) error {
	if strings.TrimSpace(comment.Text) == "" {
		return errs.FieldErrorf("text", errs.EINVALID, "The comment text must not be empty.")
	}
	return nil
}

// createdSetIfUnset assigns the creation timestamp if none is provided.
func (cv *commentValidator) createdSetIfUnset(comment *domain.Comment) error {
	if comment.Created.IsZero() {
		comment.Created = time.Now()
	}
	return nil
}

// ByPostID retrieves the Comments of a single post, oldest first, with their
// authors resolved.
func (cg *commentGorm) ByPostID(postID int) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := cg.db.
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create stores the data from the Comment object in a new database record,
// then reloads it with its Author resolved.
func (cg *commentGorm) Create(comment *domain.Comment) error {
	if err := cg.db.Create(comment).Error; err != nil {
		return err
	}
	return cg.db.Preload("Author").First(comment, "id = ?", comment.ID).Error
}
