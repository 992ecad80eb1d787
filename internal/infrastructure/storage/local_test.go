package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalhub-backend/internal/shared/apperror"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	payload := []byte("RIFF....WAVEfmt fake sample")

	ref, err := s.Store(ctx, BytesFile("sample.WAV", payload), CategorySamples)
	require.NoError(t, err)
	assert.Equal(t, CategorySamples, ref.Category())
	assert.Equal(t, ".wav", filepath.Ext(ref.Name()))

	rc, obj, err := s.Retrieve(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "audio/wav", obj.ContentType)
	assert.Equal(t, int64(len(payload)), obj.Size)
}

func TestLocalStoreWritesUnderCategoryDirectory(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(context.Background(), BytesFile("a.png", []byte("x")), CategoryAvatars)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(s.Root(), "avatars", ref.Name()))
	assert.NoError(t, err)
}

func TestLocalStoreRetrieveMissing(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Retrieve(context.Background(), Ref("voicebanks/does-not-exist.zip"))
	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLocalStoreRetrieveUnresolvableRefs(t *testing.T) {
	s := newTestStore(t)

	for _, raw := range []string{
		"voicebanks/../../etc/passwd",
		"music/nope.mp3",
		"nope.zip",
		"/etc/passwd",
		"",
	} {
		t.Run(raw, func(t *testing.T) {
			_, _, err := s.Retrieve(context.Background(), Ref(raw))
			assert.ErrorIs(t, err, ErrAssetNotFound)
			assert.True(t, apperror.IsNotFound(err))
		})
	}
}

func TestLocalStoreDiscardRejectsInvalidRef(t *testing.T) {
	s := newTestStore(t)

	err := s.Discard(context.Background(), Ref("music/nope.mp3"))
	assert.ErrorIs(t, err, ErrInvalidRef)
}

func TestLocalStoreUniqueRefsUnderConcurrency(t *testing.T) {
	s := newTestStore(t)
	const n = 32

	refs := make([]Ref, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref, err := s.Store(context.Background(), BytesFile("same.zip", []byte{byte(i)}), CategoryVoicebanks)
			assert.NoError(t, err)
			refs[i] = ref
		}(i)
	}
	wg.Wait()

	seen := map[Ref]bool{}
	for _, r := range refs {
		assert.False(t, seen[r], "duplicate ref %s", r)
		seen[r] = true
	}
}

func TestLocalStoreDiscard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ref, err := s.Store(ctx, BytesFile("a.zip", []byte("x")), CategoryVoicebanks)
	require.NoError(t, err)

	require.NoError(t, s.Discard(ctx, ref))
	_, _, err = s.Retrieve(ctx, ref)
	assert.ErrorIs(t, err, ErrAssetNotFound)

	// second discard is a no-op
	assert.NoError(t, s.Discard(ctx, ref))
}

func TestLocalStoreRejectsMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Store(context.Background(), nil, CategoryVoicebanks)
	assert.True(t, apperror.IsStorage(err))
}
