package table

import "errors"

// Column pairs a header label with the record field it displays. Labels and
// keys travel together so headers can never go ragged against the data.
type Column struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// ButtonState modulates a single row action control.
type ButtonState struct {
	Show     bool   `json:"show"`
	Disabled bool   `json:"disabled"`
	Title    string `json:"title,omitempty"`
}

// Actions holds the optional per-row callbacks and their per-row button
// configuration. A nil callback omits the control entirely; a config
// returning Show=false suppresses it; Disabled renders it inert with the
// explanatory title.
type Actions[T any] struct {
	OnView   func(T)
	OnEdit   func(T)
	OnDelete func(T)

	ViewConfig   func(T) ButtonState
	EditConfig   func(T) ButtonState
	DeleteConfig func(T) ButtonState
}

// Config sets up a Presenter.
type Config[T any] struct {
	Columns []Column
	// Fields string-coerces a record into its displayable values by key.
	Fields func(T) map[string]any
	// StatusKey, when set, names the field rendered with conditional
	// styling. Only Active and Inactive values have defined styling.
	StatusKey string
	PageSize  int
	// PaginateFrom is the row count above which pagination controls are
	// shown. Zero means always show them.
	PaginateFrom int
	Actions      Actions[T]
	// OnPageChange is notified after each accepted page transition.
	OnPageChange func(int)
}

// Presenter renders a flat collection as a paginated table. Its only
// durable state is the current page.
type Presenter[T any] struct {
	cfg     Config[T]
	records []T
	page    int
}

// Cell is a rendered column value for one row.
type Cell struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// RowAction is a rendered action control.
type RowAction struct {
	Disabled bool   `json:"disabled"`
	Title    string `json:"title,omitempty"`
}

// Row is one rendered record.
type Row[T any] struct {
	Record T            `json:"record"`
	Cells  []Cell       `json:"cells"`
	Status string       `json:"status,omitempty"`
	View   *RowAction   `json:"view,omitempty"`
	Edit   *RowAction   `json:"edit,omitempty"`
	Delete *RowAction   `json:"delete,omitempty"`
}

// Page is the rendered view of the current page.
type Page[T any] struct {
	Columns    []Column   `json:"columns"`
	Rows       []Row[T]   `json:"rows"`
	Empty      bool       `json:"empty"`
	Pagination Pagination `json:"pagination"`
	ShowPager  bool       `json:"show_pager"`
}

var (
	// ErrNoColumns rejects a presenter with an empty column list.
	ErrNoColumns = errors.New("table: at least one column required")
	// ErrBadPageSize rejects a non-positive page size.
	ErrBadPageSize = errors.New("table: page size must be positive")
	// ErrNoFields rejects a presenter without a field accessor.
	ErrNoFields = errors.New("table: field accessor required")
)

// NewPresenter validates the configuration and returns a presenter on page
// 1. Construction fails loudly on caller errors instead of rendering
// undefined columns.
func NewPresenter[T any](cfg Config[T]) (*Presenter[T], error) {
	if len(cfg.Columns) == 0 {
		return nil, ErrNoColumns
	}
	for _, c := range cfg.Columns {
		if c.Key == "" {
			return nil, ErrNoColumns
		}
	}
	if cfg.PageSize <= 0 {
		return nil, ErrBadPageSize
	}
	if cfg.Fields == nil {
		return nil, ErrNoFields
	}
	return &Presenter[T]{cfg: cfg, page: 1}, nil
}

// SetRecords replaces the collection. When the current page would fall out
// of range, for instance after a filter shrinks the result set, the page
// resets to 1.
func (p *Presenter[T]) SetRecords(records []T) {
	p.records = records
	if p.page > p.totalPages() {
		p.setPage(1)
	}
}

// SetPage moves to page n when 1 <= n <= totalPages. A request beyond the
// last page clamps to page 1; a request below 1 is ignored.
func (p *Presenter[T]) SetPage(n int) {
	if n < 1 {
		return
	}
	if n > p.totalPages() {
		p.setPage(1)
		return
	}
	p.setPage(n)
}

func (p *Presenter[T]) setPage(n int) {
	if n == p.page {
		return
	}
	p.page = n
	if p.cfg.OnPageChange != nil {
		p.cfg.OnPageChange(n)
	}
}

// CurrentPage returns the active page, always >= 1.
func (p *Presenter[T]) CurrentPage() int { return p.page }

// TotalPages returns the page count, never below 1.
func (p *Presenter[T]) TotalPages() int { return p.totalPages() }

func (p *Presenter[T]) totalPages() int {
	return NewPagination(1, p.cfg.PageSize, len(p.records)).TotalPages
}

// Render produces the visible page.
func (p *Presenter[T]) Render() Page[T] {
	pg := NewPagination(p.page, p.cfg.PageSize, len(p.records))
	if pg.Page != p.page {
		// Clamped after the collection shrank under us.
		p.setPage(pg.Page)
	}
	start, end := pg.SliceBounds()

	out := Page[T]{
		Columns:    p.cfg.Columns,
		Empty:      len(p.records) == 0,
		Pagination: pg,
		ShowPager:  len(p.records) > p.cfg.PaginateFrom && pg.TotalPages > 1,
	}
	for _, rec := range p.records[start:end] {
		out.Rows = append(out.Rows, p.renderRow(rec))
	}
	return out
}

func (p *Presenter[T]) renderRow(rec T) Row[T] {
	values := p.cfg.Fields(rec)
	row := Row[T]{Record: rec}
	row.Cells = make([]Cell, 0, len(p.cfg.Columns))
	for _, col := range p.cfg.Columns {
		row.Cells = append(row.Cells, Cell{Key: col.Key, Value: values[col.Key]})
	}
	if p.cfg.StatusKey != "" {
		row.Status = coerce(values[p.cfg.StatusKey])
	}
	row.View = renderAction(rec, p.cfg.Actions.OnView, p.cfg.Actions.ViewConfig)
	row.Edit = renderAction(rec, p.cfg.Actions.OnEdit, p.cfg.Actions.EditConfig)
	row.Delete = renderAction(rec, p.cfg.Actions.OnDelete, p.cfg.Actions.DeleteConfig)
	return row
}

func renderAction[T any](rec T, callback func(T), config func(T) ButtonState) *RowAction {
	if callback == nil {
		return nil
	}
	if config == nil {
		return &RowAction{}
	}
	state := config(rec)
	if !state.Show {
		return nil
	}
	return &RowAction{Disabled: state.Disabled, Title: state.Title}
}

// InvokeView fires the view callback with the full record. It reports
// whether the callback ran; suppressed or disabled controls do not fire.
func (p *Presenter[T]) InvokeView(rec T) bool {
	return invoke(rec, p.cfg.Actions.OnView, p.cfg.Actions.ViewConfig)
}

// InvokeEdit fires the edit callback with the full record.
func (p *Presenter[T]) InvokeEdit(rec T) bool {
	return invoke(rec, p.cfg.Actions.OnEdit, p.cfg.Actions.EditConfig)
}

// InvokeDelete fires the delete callback with the full record.
func (p *Presenter[T]) InvokeDelete(rec T) bool {
	return invoke(rec, p.cfg.Actions.OnDelete, p.cfg.Actions.DeleteConfig)
}

func invoke[T any](rec T, callback func(T), config func(T) ButtonState) bool {
	if callback == nil {
		return false
	}
	if config != nil {
		state := config(rec)
		if !state.Show || state.Disabled {
			return false
		}
	}
	callback(rec)
	return true
}
