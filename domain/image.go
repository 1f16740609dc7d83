package domain

import "mime/multipart"

const (
	// OwnerTypePost expresses that an Image is attached to a Post.
	OwnerTypePost = "post"
	// OwnerTypeUser expresses that an Image belongs to a User (avatar).
	OwnerTypeUser = "user"
	// ImagesBaseDir is the default storage location of uploaded images.
	ImagesBaseDir = "images"
	// MaxUploadSize is the maximum filesize of an image to be uploaded.
	MaxUploadSize int64 = 5 << 20 // 5 Megabyte
)

// Image represents an uploaded image attachment. Images are only stored as
// files in the filesystem and have no dedicated table in the database. They
// have a polymorphic relationship with an owner, resolved through the storage
// location: an image attached to the Post with ID 2 lives under
// <base>/post/2/<unique_name>.png. URL carries the path a client fetches the
// image from, File the actual upload to be written to disk.
type Image struct {
	URL         string         `json:"url"`
	OwnerType   string         `json:"-"`
	OwnerID     int            `json:"-"`
	File        multipart.File `json:"-"`
	Filename    string         `json:"-"`
	Extension   string         `json:"-"`
	ContentType string         `json:"-"`
	Size        int64          `json:"-"`
}

// ImageService is a set of methods to manipulate and work with the Image model
// and the respective image files.
type ImageService interface {
	Create(image *Image) error
	ByOwner(ownerType string, ownerID int) ([]Image, error)
	Delete(i *Image) error
	DeleteAll(ownerType string, ownerID int) error
}
