package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

type memoryRepo struct {
	nextID    int64
	purchases map[int64]Purchase
	items     []Item
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, purchases: make(map[int64]Purchase)}
}

func (m *memoryRepo) List(_ context.Context, _ httpx.ListParams) ([]Purchase, int, error) {
	out := make([]Purchase, 0, len(m.purchases))
	for id := range m.purchases {
		p, _ := m.Get(context.Background(), id)
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Purchase, error) {
	p, ok := m.purchases[id]
	if !ok {
		return Purchase{}, httpx.ErrNotFound
	}
	p.Items = nil
	p.Total = 0
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].PurchaseID == id {
			p.Items = append(p.Items, m.items[i])
			p.Total += m.items[i].Subtotal()
		}
	}
	return p, nil
}

func (m *memoryRepo) Create(_ context.Context, purchase Purchase) (Purchase, error) {
	purchase.ID = m.nextID
	m.nextID++
	for i := range purchase.Items {
		purchase.Items[i].PurchaseID = purchase.ID
		purchase.Items[i].ID = m.nextID
		m.nextID++
		m.items = append(m.items, purchase.Items[i])
	}
	stored := purchase
	stored.Items = nil
	m.purchases[purchase.ID] = stored
	return m.Get(context.Background(), purchase.ID)
}

func (m *memoryRepo) Update(_ context.Context, id int64, purchase Purchase) error {
	existing, ok := m.purchases[id]
	if !ok {
		return httpx.ErrNotFound
	}
	existing.ProviderID = purchase.ProviderID
	existing.OrderDate = purchase.OrderDate
	existing.Notes = purchase.Notes
	m.purchases[id] = existing
	return nil
}

func (m *memoryRepo) SetStatus(_ context.Context, id int64, status string) error {
	p, ok := m.purchases[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.Status = status
	m.purchases[id] = p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.purchases[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.purchases, id)
	return nil
}

func (m *memoryRepo) AddItem(_ context.Context, item Item) (Item, error) {
	item.ID = m.nextID
	m.nextID++
	item.CreatedAt = time.Now()
	m.items = append(m.items, item)
	return item, nil
}

func TestCreateComputesTotal(t *testing.T) {
	svc := NewService(newMemoryRepo())

	purchase, err := svc.Create(context.Background(), Purchase{
		ProviderID: 1,
		Items: []Item{
			{Description: "balls", Quantity: 10, UnitPrice: 12.5},
			{Description: "nets", Quantity: 2, UnitPrice: 40},
		},
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, purchase.Status)
	require.Len(t, purchase.Items, 2)
	require.InDelta(t, 205.0, purchase.Total, 0.001)
}

func TestItemsAppendOnlyWhilePending(t *testing.T) {
	svc := NewService(newMemoryRepo())

	purchase, err := svc.Create(context.Background(), Purchase{ProviderID: 1})
	require.NoError(t, err)

	item, err := svc.AddItem(context.Background(), Item{PurchaseID: purchase.ID, Description: "cones", Quantity: 5, UnitPrice: 3})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	_, err = svc.MarkReceived(context.Background(), purchase.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), Item{PurchaseID: purchase.ID, Description: "late", Quantity: 1, UnitPrice: 1})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteBlockedWhilePending(t *testing.T) {
	svc := NewService(newMemoryRepo())

	purchase, err := svc.Create(context.Background(), Purchase{ProviderID: 1})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), purchase.ID)
	require.ErrorIs(t, err, httpx.ErrActiveRecord)

	_, err = svc.Cancel(context.Background(), purchase.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), purchase.ID))
}

func TestStatusTransitionsOnlyFromPending(t *testing.T) {
	svc := NewService(newMemoryRepo())

	purchase, err := svc.Create(context.Background(), Purchase{ProviderID: 1})
	require.NoError(t, err)

	received, err := svc.MarkReceived(context.Background(), purchase.ID)
	require.NoError(t, err)
	require.Equal(t, StatusReceived, received.Status)

	_, err = svc.Cancel(context.Background(), purchase.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
