package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/cart"
)

type cartRepoMock struct {
	entries []*cart.Entry
	removed [][2]int64
	cleared []int64
}

func (m *cartRepoMock) ListByUser(ctx context.Context, userID int64) ([]*cart.Entry, error) {
	var out []*cart.Entry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *cartRepoMock) Upsert(ctx context.Context, e *cart.Entry) error {
	for _, have := range m.entries {
		if have.UserID == e.UserID && have.ProductID == e.ProductID {
			have.Quantity = e.Quantity
			return nil
		}
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *cartRepoMock) Remove(ctx context.Context, userID, productID int64) error {
	m.removed = append(m.removed, [2]int64{userID, productID})
	return nil
}

func (m *cartRepoMock) Clear(ctx context.Context, userID int64) error {
	m.cleared = append(m.cleared, userID)
	return nil
}

func TestCartPutUpserts(t *testing.T) {
	repo := &cartRepoMock{}
	svc := NewCartService(repo)
	actor := Actor{UserID: 7, Role: "cliente"}
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, actor, 3, 2))
	require.NoError(t, svc.Put(ctx, actor, 3, 5))

	entries, err := svc.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].Quantity)
}

func TestCartPutValidation(t *testing.T) {
	svc := NewCartService(&cartRepoMock{})
	actor := Actor{UserID: 7, Role: "cliente"}

	err := svc.Put(context.Background(), actor, 0, 0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"producto_id", "cantidad"}, verr.Fields)
}

func TestCartListIsScopedToActor(t *testing.T) {
	repo := &cartRepoMock{entries: []*cart.Entry{
		{UserID: 7, ProductID: 1, Quantity: 1},
		{UserID: 8, ProductID: 2, Quantity: 1},
	}}
	svc := NewCartService(repo)

	entries, err := svc.List(context.Background(), Actor{UserID: 7, Role: "cliente"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ProductID)
}

func TestCartRemoveAndClear(t *testing.T) {
	repo := &cartRepoMock{}
	svc := NewCartService(repo)
	actor := Actor{UserID: 7, Role: "cliente"}
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, actor, 3))
	require.NoError(t, svc.Clear(ctx, actor))
	assert.Equal(t, [][2]int64{{7, 3}}, repo.removed)
	assert.Equal(t, []int64{7}, repo.cleared)
}
