package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/domains/song/model"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/auth"
)

type memSongRepo struct {
	mu        sync.Mutex
	songs     []*model.Song
	createErr error
}

func (r *memSongRepo) Create(_ context.Context, s *model.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.songs = append(r.songs, s)
	return nil
}

func (r *memSongRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Song, error) {
	for _, s := range r.songs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, model.ErrSongNotFound
}

func (r *memSongRepo) List(_ context.Context, profileID *uuid.UUID) ([]*model.Song, error) {
	var out []*model.Song
	for i := len(r.songs) - 1; i >= 0; i-- {
		if profileID == nil || r.songs[i].ProfileID == *profileID {
			out = append(out, r.songs[i])
		}
	}
	return out, nil
}

func (r *memSongRepo) ListBySubmitter(_ context.Context, submitterID uuid.UUID) ([]*model.Song, error) {
	var out []*model.Song
	for _, s := range r.songs {
		if s.SubmitterID == submitterID {
			out = append(out, s)
		}
	}
	return out, nil
}

type profileSet map[uuid.UUID]*profileModel.VoiceProfile

func (p profileSet) GetByID(_ context.Context, id uuid.UUID) (*profileModel.VoiceProfile, error) {
	if v, ok := p[id]; ok {
		return v, nil
	}
	return nil, profileModel.ErrProfileNotFound
}

func pngFile(t *testing.T) *storage.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	return storage.BytesFile("cover.png", buf.Bytes())
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	require.NoError(t, filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	}))
	return n
}

type songFixture struct {
	svc     ServiceInterface
	repo    *memSongRepo
	store   *storage.LocalStore
	profile *profileModel.VoiceProfile
}

func newSongFixture(t *testing.T) *songFixture {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	profile := &profileModel.VoiceProfile{ID: uuid.New(), Name: "Test"}
	repo := &memSongRepo{}
	svc := NewSongService(repo, profileSet{profile.ID: profile}, store, storage.NewImageProcessor())
	return &songFixture{svc: svc, repo: repo, store: store, profile: profile}
}

var uploader = auth.Actor{AccountID: uuid.New(), Role: auth.RoleUser}

func TestCreateSong(t *testing.T) {
	f := newSongFixture(t)
	ctx := context.Background()

	song, err := f.svc.Create(ctx, uploader, &model.CreateSongRequest{
		Title:       "Song",
		ProfileID:   &f.profile.ID,
		BilibiliURL: "https://www.bilibili.com/video/BV1xx",
		SongFile:    storage.BytesFile("song.mp3", []byte("mp3")),
		CoverFile:   pngFile(t),
	})
	require.NoError(t, err)
	assert.Equal(t, f.profile.ID, song.ProfileID)
	assert.Equal(t, uploader.AccountID, song.SubmitterID)
	require.NotNil(t, song.CoverRef)
	assert.Nil(t, song.Lyrics)

	ref, err := storage.ParseRef(song.FileRef)
	require.NoError(t, err)
	assert.Equal(t, storage.CategorySongs, ref.Category())

	listed, err := f.svc.List(ctx, &f.profile.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateSongRequiresExistingProfile(t *testing.T) {
	f := newSongFixture(t)
	missing := uuid.New()

	_, err := f.svc.Create(context.Background(), uploader, &model.CreateSongRequest{
		Title:     "Song",
		ProfileID: &missing,
		SongFile:  storage.BytesFile("song.mp3", []byte("mp3")),
	})
	assert.ErrorIs(t, err, profileModel.ErrProfileNotFound)
	assert.Empty(t, f.repo.songs)
}

func TestCreateSongRejectsInvalidCover(t *testing.T) {
	f := newSongFixture(t)

	_, err := f.svc.Create(context.Background(), uploader, &model.CreateSongRequest{
		Title:     "Song",
		ProfileID: &f.profile.ID,
		SongFile:  storage.BytesFile("song.mp3", []byte("mp3")),
		CoverFile: storage.BytesFile("cover.png", []byte("not an image")),
	})
	assert.ErrorIs(t, err, storage.ErrInvalidImage)
	assert.Empty(t, f.repo.songs)
}

func TestCreateSongDiscardsFilesWhenInsertFails(t *testing.T) {
	f := newSongFixture(t)
	f.repo.createErr = errors.New("db down")

	_, err := f.svc.Create(context.Background(), uploader, &model.CreateSongRequest{
		Title:     "Song",
		ProfileID: &f.profile.ID,
		SongFile:  storage.BytesFile("song.mp3", []byte("mp3")),
		CoverFile: pngFile(t),
	})
	require.Error(t, err)

	assert.Zero(t, countFiles(t, f.store.Root()))
}

func TestCreateSongValidation(t *testing.T) {
	f := newSongFixture(t)

	_, err := f.svc.Create(context.Background(), auth.Anonymous(), &model.CreateSongRequest{})
	assert.ErrorIs(t, err, model.ErrLoginRequired)

	_, err = f.svc.Create(context.Background(), uploader, &model.CreateSongRequest{Title: "Song"})
	assert.True(t, apperror.IsValidation(err))
}
