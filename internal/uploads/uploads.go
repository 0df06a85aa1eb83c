package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var (
	ErrUnsupportedType = errors.New("unsupported image format")
	ErrFileTooLarge    = errors.New("image file is too large")
)

// maxSlugLen keeps storage names well inside the image column.
const maxSlugLen = 80

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Stored describes a file written by Save.
type Stored struct {
	Name         string // name inside the upload directory
	OriginalName string // client-submitted filename, metadata only
}

// Empty reports whether no file was stored.
func (s Stored) Empty() bool {
	return s.Name == ""
}

// Storage writes product images into a single directory.
type Storage struct {
	dir      string
	maxBytes int64
}

// NewStorage makes sure dir exists. It is called once at process start.
func NewStorage(dir string, maxBytes int64) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, maxBytes: maxBytes}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the on-disk location of a stored name. Only the base
// component of name is used.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save stores the uploaded file under a generated name. A nil header or an
// empty filename means no file was supplied and yields an empty Stored.
func (s *Storage) Save(fh *multipart.FileHeader) (Stored, error) {
	if fh == nil || fh.Filename == "" {
		return Stored{}, nil
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return Stored{}, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return Stored{}, fmt.Errorf("detect upload type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return Stored{}, ErrUnsupportedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Stored{}, fmt.Errorf("rewind upload: %w", err)
	}

	original := clientBaseName(fh.Filename)
	name := storageName(original, mtype.Extension())

	dst, err := os.OpenFile(s.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Stored{}, fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(s.Path(name))
		return Stored{}, fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(s.Path(name))
		return Stored{}, fmt.Errorf("close %s: %w", name, err)
	}

	return Stored{Name: name, OriginalName: original}, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Storage) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// clientBaseName strips any directory part a browser may have sent.
func clientBaseName(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	return filepath.Base(filename)
}

// storageName builds "<uuid>-<slug><ext>", or "<uuid><ext>" when the client
// name has nothing sluggable.
func storageName(original, ext string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	s := slug.Make(base)
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	if s == "" {
		return uuid.New().String() + ext
	}
	return uuid.New().String() + "-" + s + ext
}
