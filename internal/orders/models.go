package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one persisted order row. A checkout with N cart entries writes N
// lines sharing one transaction id; all of them carry the same user email
// and are kept on the same status by the transition path.
type Line struct {
	ID            int64
	TransactionID string // empty for orphaned/legacy rows
	UserEmail     string
	ItemName      string
	Quantity      int
	TotalPrice    decimal.Decimal
	OrderDate     time.Time
	Status        string
}

// JoinedLine is a Line with the customer's contact details joined in by
// email, as the aggregation view needs them.
type JoinedLine struct {
	Line
	UserName    string
	UserMobile  string
	UserAddress string
}

// Aggregate is the derived per-transaction order view. It is built per query
// and never persisted.
type Aggregate struct {
	TransactionID string          `json:"transaction_id"`
	UserEmail     string          `json:"user_email"`
	UserName      string          `json:"user_name"`
	UserMobile    string          `json:"user_mobile"`
	UserAddress   string          `json:"user_address"`
	Items         string          `json:"items"` // newline-joined "name xqty"
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
	OrderDate     time.Time       `json:"order_date"`
}
