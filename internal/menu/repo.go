package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

var ErrNotFound = errors.New("menu item not found")

func (r *Repo) Create(ctx context.Context, it Item) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO menu_items(item_name, category, price, status, description, image_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		it.Name, it.Category, it.Price.StringFixed(2), it.Status, it.Description, it.ImagePath,
	).Scan(&id)
	return id, err
}

func (r *Repo) Update(ctx context.Context, it Item) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE menu_items
		SET item_name = $2, category = $3, price = $4, status = $5, description = $6, image_path = $7
		WHERE id = $1`,
		it.ID, it.Name, it.Category, it.Price.StringFixed(2), it.Status, it.Description, it.ImagePath)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int64) (Item, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT id, item_name, COALESCE(category,''), price::text, status,
		       COALESCE(description,''), COALESCE(image_path,'')
		FROM menu_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return it, err
}

// List returns every item, admin view. Customer-facing filtering happens in
// ListAvailable.
func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, item_name, COALESCE(category,''), price::text, status,
		       COALESCE(description,''), COALESCE(image_path,'')
		FROM menu_items ORDER BY item_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListAvailable returns Available items, optionally filtered by category.
func (r *Repo) ListAvailable(ctx context.Context, category string) ([]Item, error) {
	q := `
		SELECT id, item_name, COALESCE(category,''), price::text, status,
		       COALESCE(description,''), COALESCE(image_path,'')
		FROM menu_items WHERE status = $1`
	args := []any{string(StatusAvailable)}
	if category != "" {
		q += ` AND category = $2`
		args = append(args, category)
	}
	q += ` ORDER BY item_name`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// SetImagePath records the stored image reference for an item.
func (r *Repo) SetImagePath(ctx context.Context, id int64, path string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE menu_items SET image_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	var price string
	if err := row.Scan(&it.ID, &it.Name, &it.Category, &price, &it.Status,
		&it.Description, &it.ImagePath); err != nil {
		return Item{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return Item{}, fmt.Errorf("price for item %d: %w", it.ID, err)
	}
	it.Price = d
	return it, nil
}
