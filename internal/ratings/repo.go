package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Ratings are 1..5, one row per (user_email, item_name); a second write for
// the same pair overwrites the first.

var ErrOutOfRange = errors.New("rating must be between 1 and 5")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Upsert(ctx context.Context, userEmail, itemName string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrOutOfRange
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO ratings(user_email, item_name, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_email, item_name) DO UPDATE SET rating = EXCLUDED.rating`,
		userEmail, itemName, rating)
	return err
}

// UserRating returns 0 when the user has not rated the item.
func (r *Repo) UserRating(ctx context.Context, userEmail, itemName string) (int, error) {
	var rating int
	err := r.DB.QueryRow(ctx,
		`SELECT rating FROM ratings WHERE user_email = $1 AND item_name = $2`,
		userEmail, itemName).Scan(&rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rating, nil
}

// Average returns the mean rating for an item, zero when unrated.
func (r *Repo) Average(ctx context.Context, itemName string) (decimal.Decimal, error) {
	var avg *string
	err := r.DB.QueryRow(ctx,
		`SELECT AVG(rating)::text FROM ratings WHERE item_name = $1`,
		itemName).Scan(&avg)
	if err != nil {
		return decimal.Zero, err
	}
	if avg == nil {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(*avg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("average for %q: %w", itemName, err)
	}
	return d, nil
}
