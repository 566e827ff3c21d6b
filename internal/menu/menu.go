package menu

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	StatusAvailable  ItemStatus = "Available"
	StatusOutOfStock ItemStatus = "Out of Stock"
)

// ParseItemStatus normalizes incoming status strings. The column stays free
// text for forward compatibility; writes go through this.
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case StatusAvailable, StatusOutOfStock:
		return ItemStatus(s), nil
	}
	return "", fmt.Errorf("unknown item status %q", s)
}

type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"item_name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	ImagePath   string          `json:"image_path,omitempty"`
}

// Available is derived from Status on demand; there is no second stored flag
// to keep in sync.
func (i Item) Available() bool { return ItemStatus(i.Status) == StatusAvailable }
