package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LocalStore keeps assets in a directory tree on the local disk
type LocalStore struct {
	root string
}

var _ AssetStore = (*LocalStore)(nil)

// NewLocalStore creates the root directory when missing
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) pathOf(ref Ref) string {
	return filepath.Join(s.root, filepath.FromSlash(string(ref)))
}

func (s *LocalStore) Store(ctx context.Context, file *File, category Category) (Ref, error) {
	if !file.Present() {
		return "", storageErr("no file supplied", nil)
	}
	if !category.Valid() {
		return "", storageErr(fmt.Sprintf("unknown category %q", category), nil)
	}
	if err := ctx.Err(); err != nil {
		return "", storageErr("store cancelled", err)
	}

	ref := newRef(category, file.Name)
	dst := s.pathOf(ref)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", storageErr("create category directory", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", storageErr("open upload", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", storageErr("create asset file", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", storageErr("write asset", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", storageErr("flush asset", err)
	}

	log.Debug().Str("ref", ref.String()).Msg("[STORAGE] asset stored")
	return ref, nil
}

func (s *LocalStore) Retrieve(ctx context.Context, ref Ref) (io.ReadCloser, Object, error) {
	// a ref that cannot exist in the store does not resolve
	if _, err := ParseRef(string(ref)); err != nil {
		return nil, Object{}, ErrAssetNotFound
	}

	f, err := os.Open(s.pathOf(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Object{}, ErrAssetNotFound
	}
	if err != nil {
		return nil, Object{}, storageErr("open asset", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Object{}, storageErr("stat asset", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, Object{}, ErrAssetNotFound
	}

	return f, Object{
		Ref:         ref,
		ContentType: ContentTypeFor(ref.Name()),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

func (s *LocalStore) Discard(ctx context.Context, ref Ref) error {
	if _, err := ParseRef(string(ref)); err != nil {
		return err
	}
	err := os.Remove(s.pathOf(ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storageErr("remove asset", err)
	}
	return nil
}
