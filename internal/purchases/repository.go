package purchases

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/clubdesk/clubdesk/internal/platform/db"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Repository defines data access for purchase orders.
type Repository interface {
	List(ctx context.Context, filters httpx.ListParams) ([]Purchase, int, error)
	Get(ctx context.Context, id int64) (Purchase, error)
	Create(ctx context.Context, purchase Purchase) (Purchase, error)
	Update(ctx context.Context, id int64, purchase Purchase) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, item Item) (Item, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectPurchase = `SELECT p.id, p.provider_id, pr.name, p.order_date, p.status, p.notes, p.created_at, p.updated_at
FROM purchases p JOIN providers pr ON pr.id = p.provider_id`

func (r *repository) List(ctx context.Context, filters httpx.ListParams) ([]Purchase, int, error) {
	query := selectPurchase + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM purchases p JOIN providers pr ON pr.id = p.provider_id WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND pr.name ILIKE $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		cond := ` AND p.status = $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
	if filters.Limit > 0 {
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, filters.Limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.ProviderID, &p.ProviderName, &p.OrderDate, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range out {
		g.Go(func() error {
			items, orderTotal, err := r.itemsFor(gctx, out[i].ID)
			if err != nil {
				return err
			}
			out[i].Items = items
			out[i].Total = orderTotal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Purchase, error) {
	var p Purchase
	err := r.db.QueryRow(ctx, selectPurchase+` WHERE p.id = $1`, id).
		Scan(&p.ID, &p.ProviderID, &p.ProviderName, &p.OrderDate, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Purchase{}, httpx.ErrNotFound
	}
	if err != nil {
		return Purchase{}, err
	}
	items, total, err := r.itemsFor(ctx, id)
	if err != nil {
		return Purchase{}, err
	}
	p.Items = items
	p.Total = total
	return p, nil
}

// itemsFor returns lines newest first plus the order total.
func (r *repository) itemsFor(ctx context.Context, purchaseID int64) ([]Item, float64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, purchase_id, description, quantity, unit_price, created_at
		 FROM purchase_items WHERE purchase_id = $1 ORDER BY created_at DESC, id DESC`,
		purchaseID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Item
	var total float64
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.Description, &it.Quantity, &it.UnitPrice, &it.CreatedAt); err != nil {
			return nil, 0, err
		}
		total += it.Subtotal()
		items = append(items, it)
	}
	return items, total, rows.Err()
}

// Create inserts the order and its initial lines in one transaction.
func (r *repository) Create(ctx context.Context, purchase Purchase) (Purchase, error) {
	now := time.Now()
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO purchases (provider_id, order_date, status, notes, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`,
			purchase.ProviderID, purchase.OrderDate, purchase.Status, purchase.Notes, now).
			Scan(&purchase.ID)
		if err != nil {
			return err
		}
		for i := range purchase.Items {
			purchase.Items[i].PurchaseID = purchase.ID
			err := tx.QueryRow(ctx,
				`INSERT INTO purchase_items (purchase_id, description, quantity, unit_price, created_at)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				purchase.ID, purchase.Items[i].Description, purchase.Items[i].Quantity, purchase.Items[i].UnitPrice, now).
				Scan(&purchase.Items[i].ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Purchase{}, err
	}
	return r.Get(ctx, purchase.ID)
}

func (r *repository) Update(ctx context.Context, id int64, purchase Purchase) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE purchases SET provider_id = $1, order_date = $2, notes = $3, updated_at = $4 WHERE id = $5`,
		purchase.ProviderID, purchase.OrderDate, purchase.Notes, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE purchases SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return nil
	})
}

func (r *repository) AddItem(ctx context.Context, item Item) (Item, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO purchase_items (purchase_id, description, quantity, unit_price, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		item.PurchaseID, item.Description, item.Quantity, item.UnitPrice, now).
		Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	item.CreatedAt = now
	return item, nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "provider":
		return "pr.name " + dir
	case "status":
		return "p.status " + dir
	default:
		return "p.order_date DESC, p.id DESC"
	}
}
