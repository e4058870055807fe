package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	ID     int
	Name   string
	Estado string
}

func itemFields(it item) map[string]any {
	return map[string]any{"id": it.ID, "name": it.Name, "estado": it.Estado}
}

func makeItems(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{ID: i, Name: fmt.Sprintf("item-%02d", i), Estado: "Activo"}
	}
	return out
}

func newPresenter(t *testing.T, pageSize int, actions Actions[item]) *Presenter[item] {
	t.Helper()
	p, err := NewPresenter(Config[item]{
		Columns:   []Column{{Label: "ID", Key: "id"}, {Label: "Name", Key: "name"}},
		Fields:    itemFields,
		StatusKey: "estado",
		PageSize:  pageSize,
		Actions:   actions,
	})
	require.NoError(t, err)
	return p
}

func TestNewPresenterRejectsCallerErrors(t *testing.T) {
	_, err := NewPresenter(Config[item]{Fields: itemFields, PageSize: 5})
	require.ErrorIs(t, err, ErrNoColumns)

	_, err = NewPresenter(Config[item]{
		Columns: []Column{{Label: "ID", Key: "id"}},
		Fields:  itemFields,
	})
	require.ErrorIs(t, err, ErrBadPageSize)

	_, err = NewPresenter(Config[item]{
		Columns:  []Column{{Label: "ID", Key: "id"}},
		PageSize: 5,
	})
	require.ErrorIs(t, err, ErrNoFields)

	_, err = NewPresenter(Config[item]{
		Columns:  []Column{{Label: "ID"}},
		Fields:   itemFields,
		PageSize: 5,
	})
	require.ErrorIs(t, err, ErrNoColumns)
}

func TestPaginationRoundTrip(t *testing.T) {
	for _, tc := range []struct{ n, pageSize int }{
		{0, 5}, {1, 5}, {5, 5}, {23, 5}, {50, 7}, {3, 10},
	} {
		p := newPresenter(t, tc.pageSize, Actions[item]{})
		records := makeItems(tc.n)
		p.SetRecords(records)

		seen := []item{}
		for page := 1; page <= p.TotalPages(); page++ {
			p.SetPage(page)
			rendered := p.Render()
			require.LessOrEqual(t, len(rendered.Rows), tc.pageSize)
			if tc.n > 0 {
				require.NotEmpty(t, rendered.Rows, "n=%d page=%d", tc.n, page)
			}
			for _, row := range rendered.Rows {
				seen = append(seen, row.Record)
			}
		}
		require.Equal(t, records, seen, "n=%d pageSize=%d", tc.n, tc.pageSize)
	}
}

func TestTwentyThreeRecordsPageSizeFive(t *testing.T) {
	p := newPresenter(t, 5, Actions[item]{})
	p.SetRecords(makeItems(23))

	require.Equal(t, 5, p.TotalPages())

	p.SetPage(5)
	rendered := p.Render()
	require.Len(t, rendered.Rows, 3)
	require.Equal(t, 20, rendered.Rows[0].Record.ID)
	require.Equal(t, 22, rendered.Rows[2].Record.ID)

	// Requesting a page past the end clamps back to page 1.
	p.SetPage(6)
	require.Equal(t, 1, p.CurrentPage())
	rendered = p.Render()
	require.Equal(t, 0, rendered.Rows[0].Record.ID)
}

func TestPageClampIsIdempotent(t *testing.T) {
	p := newPresenter(t, 5, Actions[item]{})
	p.SetRecords(makeItems(12))

	p.SetPage(99)
	first := p.Render()
	p.SetPage(99)
	second := p.Render()

	require.Equal(t, 1, p.CurrentPage())
	require.Equal(t, first.Rows, second.Rows)

	p.SetPage(1)
	require.Equal(t, first.Rows, p.Render().Rows)

	// Below-range requests are ignored.
	p.SetPage(2)
	p.SetPage(0)
	require.Equal(t, 2, p.CurrentPage())
}

func TestShrinkingCollectionResetsPage(t *testing.T) {
	var changes []int
	p, err := NewPresenter(Config[item]{
		Columns:      []Column{{Label: "ID", Key: "id"}},
		Fields:       itemFields,
		PageSize:     5,
		OnPageChange: func(n int) { changes = append(changes, n) },
	})
	require.NoError(t, err)

	p.SetRecords(makeItems(23))
	p.SetPage(5)
	p.SetRecords(makeItems(6))

	require.Equal(t, 1, p.CurrentPage())
	require.Equal(t, []int{5, 1}, changes)
}

func TestEmptyCollectionRendersPlaceholderState(t *testing.T) {
	p := newPresenter(t, 5, Actions[item]{})
	p.SetRecords(nil)

	rendered := p.Render()
	require.True(t, rendered.Empty)
	require.Empty(t, rendered.Rows)
	require.Equal(t, 1, rendered.Pagination.Page)
	require.Equal(t, 1, rendered.Pagination.TotalPages)
	require.False(t, rendered.ShowPager)
}

func TestPaginateFromThreshold(t *testing.T) {
	p, err := NewPresenter(Config[item]{
		Columns:      []Column{{Label: "ID", Key: "id"}},
		Fields:       itemFields,
		PageSize:     5,
		PaginateFrom: 10,
	})
	require.NoError(t, err)

	p.SetRecords(makeItems(8))
	require.False(t, p.Render().ShowPager)

	p.SetRecords(makeItems(11))
	require.True(t, p.Render().ShowPager)
}

func TestSearchIsCaseFoldedSubstring(t *testing.T) {
	records := []item{
		{ID: 1, Name: "Carlos PÉREZ", Estado: "Activo"},
		{ID: 2, Name: "Ana López", Estado: "Inactivo"},
		{ID: 3, Name: "Jorge Díaz", Estado: "Activo"},
	}

	require.Len(t, Filter(records, itemFields, "pérez"), 1)
	require.Len(t, Filter(records, itemFields, "LÓPEZ"), 1)
	require.Len(t, Filter(records, itemFields, ""), 3)
	require.Empty(t, Filter(records, itemFields, "zorro"))
}

func TestStatusFilterIsExactMatch(t *testing.T) {
	records := []item{
		{ID: 1, Estado: "Activo"},
		{ID: 2, Estado: "Inactivo"},
		{ID: 3, Estado: "Activo"},
	}

	// Substring search would match both: "Inactivo" contains "activo"
	// under case folding. Status filtering must not.
	active := FilterStatus(records, itemFields, "estado", "Activo")
	require.Len(t, active, 2)
	for _, rec := range active {
		require.Equal(t, "Activo", rec.Estado)
	}

	inactive := FilterStatus(records, itemFields, "estado", "Inactivo")
	require.Len(t, inactive, 1)
}

func TestRowActionsFollowCallbacksAndConfig(t *testing.T) {
	var edited, deleted []int
	actions := Actions[item]{
		OnEdit:   func(it item) { edited = append(edited, it.ID) },
		OnDelete: func(it item) { deleted = append(deleted, it.ID) },
		DeleteConfig: func(it item) ButtonState {
			if it.Estado == "Activo" {
				return ButtonState{Show: true, Disabled: true, Title: "active records cannot be deleted"}
			}
			return ButtonState{Show: true}
		},
	}
	p := newPresenter(t, 5, actions)
	p.SetRecords([]item{
		{ID: 1, Estado: "Activo"},
		{ID: 2, Estado: "Inactivo"},
	})

	rendered := p.Render()
	// No view callback wired: control omitted entirely.
	require.Nil(t, rendered.Rows[0].View)
	require.NotNil(t, rendered.Rows[0].Edit)
	require.True(t, rendered.Rows[0].Delete.Disabled)
	require.Equal(t, "active records cannot be deleted", rendered.Rows[0].Delete.Title)
	require.False(t, rendered.Rows[1].Delete.Disabled)

	require.False(t, p.InvokeView(item{ID: 1}))
	require.True(t, p.InvokeEdit(item{ID: 1}))
	require.False(t, p.InvokeDelete(item{ID: 1, Estado: "Activo"}))
	require.True(t, p.InvokeDelete(item{ID: 2, Estado: "Inactivo"}))
	require.Equal(t, []int{1}, edited)
	require.Equal(t, []int{2}, deleted)
}

func TestStatusColumnRendered(t *testing.T) {
	p := newPresenter(t, 5, Actions[item]{})
	p.SetRecords([]item{{ID: 1, Name: "x", Estado: "Inactivo"}})
	rendered := p.Render()
	require.Equal(t, "Inactivo", rendered.Rows[0].Status)
	require.Equal(t, []Cell{{Key: "id", Value: 1}, {Key: "name", Value: "x"}}, rendered.Rows[0].Cells)
}
