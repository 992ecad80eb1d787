package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/infrastructure/storage"
)

// uploadBatch remembers the assets written by one Submit so they can be
// discarded when the submission fails before its record exists
type uploadBatch struct {
	store storage.AssetStore
	refs  []storage.Ref
}

func newUploadBatch(store storage.AssetStore) *uploadBatch {
	return &uploadBatch{store: store}
}

func (b *uploadBatch) put(ctx context.Context, f *storage.File, category storage.Category) (storage.Ref, error) {
	ref, err := b.store.Store(ctx, f, category)
	if err != nil {
		return "", err
	}
	b.refs = append(b.refs, ref)
	return ref, nil
}

// abort discards everything written so far and returns cause unchanged
func (b *uploadBatch) abort(ctx context.Context, cause error) error {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, ref := range b.refs {
		if err := b.store.Discard(cleanupCtx, ref); err != nil {
			log.Warn().Err(err).Str("ref", ref.String()).Msg("failed to discard orphaned asset")
		}
	}
	b.refs = nil
	return cause
}
