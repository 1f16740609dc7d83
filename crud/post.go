package crud

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"bloghub/domain"
	"bloghub/errs"
)

// PostService manages Posts.
// It implements the domain.PostService interface.
type PostService struct {
	postValidator
}

// postValidator runs validations on incoming Post data.
// On success, it passes the data on to postGorm.
// Otherwise, it returns the error of the validation that has failed.
type postValidator struct {
	postGorm
}

// postGorm runs CRUD operations on the database using incoming Post data.
// It assumes that data has been validated.
type postGorm struct {
	db *gorm.DB
}

// NewPostService returns an instance of PostService.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		postValidator{
			postGorm{
				db: db,
			},
		},
	}
}

// Ensure the PostService struct properly implements the domain.PostService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.PostService = &PostService{}

// Create runs validations needed for creating new Post database records.
func (pv *postValidator) Create(post *domain.Post) error {
	err := runPostValFns(post,
		pv.authorIDValid,
		pv.textNotEmpty,
		pv.groupExists,
		pv.pubDateSetIfUnset)
	if err != nil {
		return err
	}
	return pv.postGorm.Create(post)
}

// Update runs validations needed for updating existing Post database records.
// The post's ID, author and pub date are immutable, only text and group
// assignment are written.
func (pv *postValidator) Update(post *domain.Post) error {
	err := runPostValFns(post,
		pv.idValid,
		pv.textNotEmpty,
		pv.groupExists)
	if err != nil {
		return err
	}
	return pv.postGorm.Update(post)
}

// runPostValFns runs any number of functions of type postValFn on the passed in Post object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runPostValFns(post *domain.Post, fns ...postValFn) error {
	for _, fn := range fns {
		if err := fn(post); err != nil {
			return err
		}
	}
	return nil
}

// A postValFn is any function that takes in a pointer to a domain.Post object and returns an error.
type postValFn func(post *domain.Post) error

// authorIDValid ensures that the author ID is not empty.
func (pv *postValidator) authorIDValid(post *domain.Post) error {
	if post.AuthorID <= 0 {
		return errs.Errorf(errs.EINTERNAL, "post author id is required")
	}
	return nil
}

// idValid makes sure that the ID of a Post to be updated is greater than 0.
func (pv *postValidator) idValid(post *domain.Post) error {
	if post.ID <= 0 {
		return errs.Errorf(errs.EINTERNAL, "post id provided was invalid")
	}
	return nil
}

// textNotEmpty makes sure that the Post's text is not empty after trimming whitespace.
func (pv *postValidator) textNotEmpty(post *domain.Post) error {
	if strings.TrimSpace(post.Text) == "" {
		return errs.FieldErrorf("text", errs.EINVALID, "The post text must not be empty.")
	}
	return nil
}

// groupExists makes sure that the Post's group, if one is assigned, actually exists.
func (pv *postValidator) groupExists(post *domain.Post) error {
	if post.GroupID == nil {
		return nil
	}
	err := pv.db.First(&domain.Group{}, "id = ?", *post.GroupID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.FieldErrorf("group", errs.EINVALID, "The selected group does not exist.")
		}
		return err
	}
	return nil
}

// pubDateSetIfUnset assigns the publication timestamp if none is provided.
func (pv *postValidator) pubDateSetIfUnset(post *domain.Post) error {
	if post.PubDate.IsZero() {
		post.PubDate = time.Now()
	}
	return nil
}

// ByID retrieves a single Post by ID, with its Author and Group resolved.
// If the record doesn't exist, it returns ENOTFOUND.
func (pg *postGorm) ByID(id int) (*domain.Post, error) {
	var post domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Group").
		First(&post, "id = ?", id).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
		}
		return nil, err
	}
	return &post, nil
}

// All retrieves every Post, newest first, with Author and Group resolved in
// the same query so listings never do per-row lookups.
func (pg *postGorm) All() ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Preload("Author").
		Preload("Group").
		Order("pub_date desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByGroupID retrieves the Posts assigned to a single group, newest first.
func (pg *postGorm) ByGroupID(groupID int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Where("group_id = ?", groupID).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByAuthorID retrieves the Posts written by a single author, newest first.
func (pg *postGorm) ByAuthorID(authorID int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Where("author_id = ?", authorID).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ByFollowed retrieves the Posts written by authors the given user follows,
// newest first.
func (pg *postGorm) ByFollowed(followerID int) ([]domain.Post, error) {
	var posts []domain.Post
	err := pg.db.
		Joins("JOIN follows ON follows.followed_id = posts.author_id").
		Where("follows.follower_id = ?", followerID).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByAuthor returns the total number of Posts written by the given author.
func (pg *postGorm) CountByAuthor(authorID int) (int, error) {
	var count int64
	err := pg.db.Model(&domain.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Create stores the data from the Post object in a new database record,
// then reloads it with its Author and Group resolved.
func (pg *postGorm) Create(post *domain.Post) error {
	if err := pg.db.Create(post).Error; err != nil {
		return err
	}
	return pg.db.Preload("Author").Preload("Group").First(post, "id = ?", post.ID).Error
}

// Update writes the mutable fields of an existing Post record. Only text and
// group assignment are written, the author and id columns stay untouched no
// matter what the passed in object carries.
func (pg *postGorm) Update(post *domain.Post) error {
	err := pg.db.
		Model(&domain.Post{ID: post.ID}).
		Select("text", "group_id").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
		}).Error
	if err != nil {
		return err
	}
	return pg.db.Preload("Author").Preload("Group").First(post, "id = ?", post.ID).Error
}
