package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ DB *pgxpool.Pool }

var ErrNoSuchTransaction = errors.New("no such transaction")

// PlaceOrder inserts exactly one Pending line row for the transaction. Lines
// of one checkout are inserted one call at a time; a failed line does not
// roll back lines already written (the caller ANDs per-line results).
func (r *Repo) PlaceOrder(ctx context.Context, transactionID, userEmail, itemName string, quantity int, totalPrice decimal.Decimal) error {
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO orders(transaction_id, user_email, item_name, quantity, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		transactionID, userEmail, itemName, quantity, totalPrice.StringFixed(2), string(StatusPending),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("order insert affected no rows")
	}
	return nil
}

const joinedLineColumns = `
	o.id, COALESCE(o.transaction_id, ''), o.user_email, o.item_name,
	o.quantity, o.total_price::text, o.order_date, o.status,
	COALESCE(u.name, ''), COALESCE(u.mobile, ''), COALESCE(u.address, '')`

// ListAllWithUsers returns every line row joined with the customer's contact
// details, most recent first. Rows within one checkout share a timestamp, so
// id breaks the tie in insertion order.
func (r *Repo) ListAllWithUsers(ctx context.Context) ([]JoinedLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+joinedLineColumns+`
		FROM orders o
		LEFT JOIN users u ON u.email = o.user_email
		ORDER BY o.order_date DESC, o.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoinedLines(rows)
}

// ListUserLines is ListAllWithUsers restricted to one customer.
func (r *Repo) ListUserLines(ctx context.Context, userEmail string) ([]JoinedLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+joinedLineColumns+`
		FROM orders o
		LEFT JOIN users u ON u.email = o.user_email
		WHERE o.user_email = $1
		ORDER BY o.order_date DESC, o.id`, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJoinedLines(rows)
}

func scanJoinedLines(rows pgx.Rows) ([]JoinedLine, error) {
	var out []JoinedLine
	for rows.Next() {
		var l JoinedLine
		var total string
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.UserEmail, &l.ItemName,
			&l.Quantity, &total, &l.OrderDate, &l.Status,
			&l.UserName, &l.UserMobile, &l.UserAddress); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("total_price for line %d: %w", l.ID, err)
		}
		l.TotalPrice = d
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListOrders is the aggregation engine's entry point: fetch the joined rows
// and fold them into one aggregate per transaction. Zero rows is an empty
// result, not an error.
func (r *Repo) ListOrders(ctx context.Context) ([]Aggregate, error) {
	lines, err := r.ListAllWithUsers(ctx)
	if err != nil {
		return nil, err
	}
	return GroupLines(lines), nil
}

// UserHistory returns one customer's checkouts, aggregated, newest first.
func (r *Repo) UserHistory(ctx context.Context, userEmail string) ([]Aggregate, error) {
	lines, err := r.ListUserLines(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return GroupLines(lines), nil
}

// TransactionStatus returns the representative status (first line by id) and
// the owning customer's email.
func (r *Repo) TransactionStatus(ctx context.Context, transactionID string) (Status, string, error) {
	var status, email string
	err := r.DB.QueryRow(ctx, `
		SELECT status, user_email FROM orders
		WHERE transaction_id = $1
		ORDER BY id LIMIT 1`, transactionID).Scan(&status, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNoSuchTransaction
	}
	if err != nil {
		return "", "", err
	}
	return Status(status), email, nil
}

// UpdateStatusByTransaction writes the status onto every line of the
// transaction in a single statement.
func (r *Repo) UpdateStatusByTransaction(ctx context.Context, transactionID string, status Status) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE transaction_id = $1`,
		transactionID, string(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoSuchTransaction
	}
	return nil
}

// HasUserOrderedItem reports whether at least one line for the pair exists,
// regardless of status. It gates rating.
func (r *Repo) HasUserOrderedItem(ctx context.Context, userEmail, itemName string) (bool, error) {
	var ok bool
	err := r.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM orders WHERE user_email = $1 AND item_name = $2
		)`, userEmail, itemName).Scan(&ok)
	return ok, err
}
