package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

func TestMemoryDAO_Interface(t *testing.T) {
	var _ TranscriptionDAO = (*MemoryDAO)(nil)
}

func TestMemoryDAO(t *testing.T) {
	ctx := context.Background()
	dao := NewMemoryDAO()
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	dao.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := dao.Create(ctx, model.Transcript{Text: "first", Provider: "mock"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, base.Add(time.Minute), first.CreatedAt)

	second, err := dao.Create(ctx, model.Transcript{Text: "second", Provider: "local"})
	require.NoError(t, err)

	items, err := dao.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	require.NoError(t, dao.Delete(ctx, first.ID))
	err = dao.Delete(ctx, first.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	items, err = dao.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMemoryDAO_ListEmpty(t *testing.T) {
	items, err := NewMemoryDAO().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
