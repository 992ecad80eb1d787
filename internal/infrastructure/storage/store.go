package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"vocalhub-backend/internal/shared/apperror"
)

// Category namespaces stored assets; it is the first part of a Ref
type Category string

const (
	CategoryVoicebanks   Category = "voicebanks"
	CategorySamples      Category = "samples"
	CategoryAvatars      Category = "avatars"
	CategoryAvatarThumbs Category = "avatars/thumbs"
	CategoryImages       Category = "images"
	CategoryTutorials    Category = "tutorials"
	CategorySongs        Category = "songs"
	CategoryCovers       Category = "covers"
)

var knownCategories = map[Category]struct{}{
	CategoryVoicebanks:   {},
	CategorySamples:      {},
	CategoryAvatars:      {},
	CategoryAvatarThumbs: {},
	CategoryImages:       {},
	CategoryTutorials:    {},
	CategorySongs:        {},
	CategoryCovers:       {},
}

func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

var (
	ErrAssetNotFound = apperror.NotFound("ASSET_NOT_FOUND", "asset not found")
	ErrInvalidRef    = apperror.Validation("INVALID_ASSET_REF", "invalid asset reference")
)

// Ref is the stable, relative locator of a stored asset: <category>/<name>
type Ref string

func (r Ref) String() string { return string(r) }

// Category returns everything before the last slash
func (r Ref) Category() Category {
	return Category(path.Dir(string(r)))
}

// Name is the file name component of the ref
func (r Ref) Name() string {
	return path.Base(string(r))
}

// ParseRef validates an externally supplied ref. It rejects absolute paths,
// traversal segments and unknown categories.
func ParseRef(raw string) (Ref, error) {
	if raw == "" || strings.HasPrefix(raw, "/") || strings.Contains(raw, `\`) {
		return "", ErrInvalidRef
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidRef
		}
	}
	if path.Clean(raw) != raw {
		return "", ErrInvalidRef
	}

	ref := Ref(raw)
	if !ref.Category().Valid() {
		return "", ErrInvalidRef
	}
	return ref, nil
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// newRef builds <category>/<uuid><ext>, keeping the lower-cased original extension
func newRef(category Category, originalName string) Ref {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(originalName, `\`, "/")))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return Ref(string(category) + "/" + uuid.NewString() + ext)
}

// =====================================================
// CONTENT TYPES
// =====================================================

const defaultContentType = "application/octet-stream"

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".7z":   "application/x-7z-compressed",
	".rar":  "application/x-rar-compressed",
	".mp4":  "video/mp4",
}

// ContentTypeFor derives the served content type from the file extension
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

// =====================================================
// FILES AND OBJECTS
// =====================================================

// File is an upload waiting to be stored. Open is called once per Store.
type File struct {
	Name string
	Size int64 // -1 when unknown
	Open func() (io.ReadCloser, error)
}

// Present reports whether a file was supplied at all
func (f *File) Present() bool {
	return f != nil && f.Open != nil
}

// FileFromHeader adapts a multipart upload
func FileFromHeader(fh *multipart.FileHeader) *File {
	if fh == nil {
		return nil
	}
	return &File{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// BytesFile wraps in-memory content
func BytesFile(name string, data []byte) *File {
	return &File{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Object describes a stored asset
type Object struct {
	Ref         Ref
	ContentType string
	Size        int64
	ModTime     time.Time
}

// AssetStore persists and serves binary assets
type AssetStore interface {
	// Store writes the file under a fresh unique ref in the category
	Store(ctx context.Context, file *File, category Category) (Ref, error)

	// Retrieve opens a stored asset; the caller closes the reader.
	// Any ref that does not resolve, malformed ones included, is ErrAssetNotFound.
	Retrieve(ctx context.Context, ref Ref) (io.ReadCloser, Object, error)

	// Discard removes an asset. Missing assets are not an error.
	Discard(ctx context.Context, ref Ref) error
}

func storageErr(msg string, err error) error {
	return apperror.Storage(msg, err)
}
