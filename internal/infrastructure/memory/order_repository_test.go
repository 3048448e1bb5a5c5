package memory

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

func TestOrderRepository_ListPagesEqualTimestampsOnce(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	ids := make(map[uuid.UUID]bool)
	for i := 0; i < 9; i++ {
		o := &domain.Order{ID: uuid.New(), CustomerID: "c", Status: domain.OrderPending, CreatedAt: created, UpdatedAt: created}
		require.NoError(t, repo.Insert(ctx, o))
		ids[o.ID] = true
	}
	newest := &domain.Order{ID: uuid.New(), CustomerID: "c", Status: domain.OrderPending, CreatedAt: created.Add(time.Second)}
	require.NoError(t, repo.Insert(ctx, newest))

	var seen []uuid.UUID
	for offset := 0; offset < 10; offset += 3 {
		page, err := repo.List(ctx, offset, 3)
		require.NoError(t, err)
		for _, o := range page {
			seen = append(seen, o.ID)
		}
	}

	require.Len(t, seen, 10)
	assert.Equal(t, newest.ID, seen[0])
	for i := 2; i < len(seen); i++ {
		assert.Negative(t, compareIDs(seen[i-1], seen[i]), "position %d", i)
	}
	for _, id := range seen[1:] {
		assert.True(t, ids[id])
		delete(ids, id)
	}
	assert.Empty(t, ids)
}

func TestOrderRepository_ListIsRepeatable(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		require.NoError(t, repo.Insert(ctx, &domain.Order{ID: uuid.New(), CreatedAt: created}))
	}

	first, err := repo.List(ctx, 0, 20)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := repo.List(ctx, 0, 20)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
