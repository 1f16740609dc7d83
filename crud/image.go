package crud

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"bloghub/domain"
	"bloghub/errs"
)

// ImageService manages image attachments stored in the filesystem.
// It implements the domain.ImageService interface.
type ImageService struct {
	imageValidator
}

// imageValidator runs validations / normalizations on incoming image uploads.
// On success, it passes the data on to imageFS.
// Otherwise, it returns the error of the validation that has failed.
type imageValidator struct {
	imageFS
}

// imageFS reads and writes image files below its base directory.
// It assumes that data has been validated.
type imageFS struct {
	baseDir string
}

// NewImageService returns an instance of ImageService storing files below
// baseDir. An empty baseDir falls back to domain.ImagesBaseDir.
func NewImageService(baseDir string) *ImageService {
	if baseDir == "" {
		baseDir = domain.ImagesBaseDir
	}
	return &ImageService{
		imageValidator{
			imageFS{
				baseDir: baseDir,
			},
		},
	}
}

// Ensure the ImageService struct properly implements the domain.ImageService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.ImageService = &ImageService{}

// Create runs validations needed for storing a new image file.
func (iv *imageValidator) Create(img *domain.Image) error {
	err := runImageValFns(img,
		iv.extensionValid,
		iv.contentTypeValid,
		iv.contentTypeExtensionMatch,
		iv.belowMaxSize,
		iv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return iv.imageFS.Create(img)
}

// A imageValFn is any function that takes in a pointer to a domain.Image object and returns an error.
type imageValFn func(img *domain.Image) error

// runImageValFns runs any number of functions of type imageValFn on the passed in Image object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runImageValFns(img *domain.Image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

// belowMaxSize makes sure that the upload does not exceed the size limit.
func (iv *imageValidator) belowMaxSize(img *domain.Image) error {
	size, err := img.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err = resetReaderPosition(img); err != nil {
		return err
	}
	if size > domain.MaxUploadSize {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s exceeds upload size limit of %dMB.", img.Filename, domain.MaxUploadSize/1000000,
		)
	}
	img.Size = size
	return nil
}

// contentTypeValid sniffs the upload's real content type and makes sure it's
// an image format we accept.
func (iv *imageValidator) contentTypeValid(img *domain.Image) error {
	// An empty upload reads as io.EOF. That falls through to the sniffer,
	// which won't recognize zero bytes as an image.
	buffer := make([]byte, 512)
	n, err := img.File.Read(buffer)
	if err != nil && err != io.EOF {
		return err
	}
	if err := resetReaderPosition(img); err != nil {
		return err
	}
	contentType := http.DetectContentType(buffer[:n])
	if contentType != "image/jpeg" && contentType != "image/png" {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s invalid content-type, must be image/jpeg or image/png.", img.Filename,
		)
	}
	img.ContentType = contentType
	return nil
}

// contentTypeExtensionMatch makes sure the sniffed content type matches the
// filename extension.
func (iv *imageValidator) contentTypeExtensionMatch(img *domain.Image) error {
	contentType := strings.TrimPrefix(img.ContentType, "image/")
	ext := strings.TrimPrefix(img.Extension, ".")
	if contentType != ext {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s content-type %s does not match extension %s.", img.Filename, img.ContentType, img.Extension,
		)
	}
	return nil
}

// extensionValid normalizes the filename extension and rejects anything that
// isn't jpeg or png.
func (iv *imageValidator) extensionValid(img *domain.Image) error {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s invalid extension, must be .jpeg or .png.", img.Filename,
		)
	}
	if ext == ".jpg" {
		ext = ".jpeg"
	}
	img.Extension = ext
	return nil
}

// fileNameUnique replaces the uploaded filename with a timestamp-based one so
// files never collide within an owner's directory.
func (iv *imageValidator) fileNameUnique(img *domain.Image) error {
	timestamp := time.Now().UnixMicro()
	img.Filename = strconv.FormatInt(timestamp, 10) + img.Extension
	return nil
}

// resetReaderPosition seeks back to the beginning of the file, so that
// subsequent reads will work.
func resetReaderPosition(img *domain.Image) error {
	_, err := img.File.Seek(0, io.SeekStart)
	return err
}

// Create writes the upload to the owner's directory on disk.
func (fs *imageFS) Create(img *domain.Image) error {
	path, err := fs.mkImagePath(img.OwnerType, img.OwnerID)
	if err != nil {
		return err
	}
	dst, err := os.Create(path + img.Filename)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err = io.Copy(dst, img.File); err != nil {
		return err
	}
	img.URL = "/" + path + img.Filename
	return nil
}

// ByOwner lists the images stored for the given owner.
func (fs *imageFS) ByOwner(ownerType string, ownerID int) ([]domain.Image, error) {
	path := fs.imagePath(ownerType, ownerID)
	files, err := filepath.Glob(path + "*")
	if err != nil {
		return nil, err
	}
	ret := make([]domain.Image, len(files))
	for i, f := range files {
		ret[i] = domain.Image{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			Filename:  filepath.Base(f),
			URL:       "/" + f,
		}
	}
	return ret, nil
}

// Delete removes a single image file from disk.
func (fs *imageFS) Delete(i *domain.Image) error {
	return os.Remove(fs.imagePath(i.OwnerType, i.OwnerID) + i.Filename)
}

// DeleteAll removes an owner's whole image directory from disk.
func (fs *imageFS) DeleteAll(ownerType string, ownerID int) error {
	return os.RemoveAll(fs.imagePath(ownerType, ownerID))
}

// mkImagePath creates the owner's image directory if needed and returns it.
func (fs *imageFS) mkImagePath(ownerType string, ownerID int) (string, error) {
	imagePath := fs.imagePath(ownerType, ownerID)
	if err := os.MkdirAll(imagePath, 0755); err != nil {
		return "", err
	}
	return imagePath, nil
}

// imagePath returns the owner's image directory, with a trailing slash.
func (fs *imageFS) imagePath(ownerType string, ownerID int) string {
	return fmt.Sprintf("%v/%v/%v/", fs.baseDir, ownerType, ownerID)
}
