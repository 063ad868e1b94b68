package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

// MemoryDAO keeps transcripts in process memory.
type MemoryDAO struct {
	mu    sync.RWMutex
	items map[string]model.Transcript
	now   func() time.Time
}

// NewMemoryDAO creates an empty in-memory store.
func NewMemoryDAO() *MemoryDAO {
	return &MemoryDAO{
		items: make(map[string]model.Transcript),
		now:   time.Now,
	}
}

func (m *MemoryDAO) Close() error { return nil }

func (m *MemoryDAO) List(ctx context.Context) ([]model.Transcript, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := lo.Values(m.items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (m *MemoryDAO) Create(ctx context.Context, t model.Transcript) (model.Transcript, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = m.now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[t.ID] = t
	return t, nil
}

func (m *MemoryDAO) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return apperrors.NotFound("transcription", id)
	}
	delete(m.items, id)
	return nil
}
