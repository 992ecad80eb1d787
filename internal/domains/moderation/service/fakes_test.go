package service

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"vocalhub-backend/internal/domains/moderation/model"
	profileModel "vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
)

// =====================================================
// REPOSITORY
// =====================================================

type memRepo struct {
	mu         sync.Mutex
	voicebanks map[uuid.UUID]*model.Voicebank
	tutorials  map[uuid.UUID]*model.Tutorial
	profiles   map[uuid.UUID]*profileModel.VoiceProfile
	createErr  error
	listCalls  int
}

func newMemRepo() *memRepo {
	return &memRepo{
		voicebanks: map[uuid.UUID]*model.Voicebank{},
		tutorials:  map[uuid.UUID]*model.Tutorial{},
		profiles:   map[uuid.UUID]*profileModel.VoiceProfile{},
	}
}

func (r *memRepo) CreateVoicebank(_ context.Context, vb *model.Voicebank, p *profileModel.VoiceProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if p != nil {
		r.profiles[p.ID] = p
	}
	cp := *vb
	r.voicebanks[vb.ID] = &cp
	return nil
}

func (r *memRepo) CreateTutorial(_ context.Context, t *model.Tutorial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *t
	r.tutorials[t.ID] = &cp
	return nil
}

func (r *memRepo) Get(_ context.Context, kind model.Kind, id uuid.UUID) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case model.KindVoicebank:
		if vb, ok := r.voicebanks[id]; ok {
			cp := *vb
			return &cp, nil
		}
	case model.KindTutorial:
		if t, ok := r.tutorials[id]; ok {
			cp := *t
			return &cp, nil
		}
	}
	return nil, model.ErrSubmissionNotFound
}

func matches(m *model.Moderation, f model.ListFilter) bool {
	if f.Status != nil && m.Status != *f.Status {
		return false
	}
	if f.SubmitterID != nil && m.SubmitterID != *f.SubmitterID {
		return false
	}
	return true
}

func (r *memRepo) List(_ context.Context, kind model.Kind, f model.ListFilter) ([]model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++

	var out []model.Record
	switch kind {
	case model.KindVoicebank:
		for _, vb := range r.voicebanks {
			if !matches(&vb.Moderation, f) || (f.ProfileID != nil && vb.ProfileID != *f.ProfileID) {
				continue
			}
			cp := *vb
			out = append(out, &cp)
		}
	case model.KindTutorial:
		for _, t := range r.tutorials {
			if !matches(&t.Moderation, f) {
				continue
			}
			if f.TutorialType != nil && t.Type != *f.TutorialType {
				continue
			}
			if f.Difficulty != nil && t.Difficulty != *f.Difficulty {
				continue
			}
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ModerationState().CreatedAt.After(out[j].ModerationState().CreatedAt)
	})
	return out, nil
}

func (r *memRepo) SetStatus(_ context.Context, kind model.Kind, id uuid.UUID, status model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var m *model.Moderation
	switch kind {
	case model.KindVoicebank:
		if vb, ok := r.voicebanks[id]; ok {
			m = &vb.Moderation
		}
	case model.KindTutorial:
		if t, ok := r.tutorials[id]; ok {
			m = &t.Moderation
		}
	}
	if m == nil {
		return model.ErrSubmissionNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memRepo) CountByStatus(ctx context.Context, kind model.Kind, status model.Status) (int, error) {
	records, err := r.List(ctx, kind, model.ListFilter{Status: &status})
	return len(records), err
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*profileModel.VoiceProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, profileModel.ErrProfileNotFound
}

func (r *memRepo) status(kind model.Kind, id uuid.UUID) model.Status {
	rec, err := r.Get(context.Background(), kind, id)
	if err != nil {
		return ""
	}
	return rec.ModerationState().Status
}

// =====================================================
// CACHE
// =====================================================

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("cache down")
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if raw, ok := c.entries[key]; ok {
		_ = json.Unmarshal(raw, &n)
	}
	n++
	c.entries[key], _ = json.Marshal(n)
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }

// =====================================================
// QUEUE
// =====================================================

type memQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (q *memQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (q *memQueue) types() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = t.Type()
	}
	return out
}

// =====================================================
// STORAGE
// =====================================================

// flakyStore delegates to a real LocalStore and fails the nth Store call
type flakyStore struct {
	*storage.LocalStore
	mu     sync.Mutex
	calls  int
	failOn int
}

func (s *flakyStore) Store(ctx context.Context, f *storage.File, c storage.Category) (storage.Ref, error) {
	s.mu.Lock()
	s.calls++
	fail := s.calls == s.failOn
	s.mu.Unlock()
	if fail {
		return "", apperror.Storage("disk full", nil)
	}
	return s.LocalStore.Store(ctx, f, c)
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func newLocalStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	s, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}
