package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // transaction id
	Payload       json.RawMessage `json:"payload"`
}

type PlacedLine struct {
	ItemName   string          `json:"item_name"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderPlacedPayload struct {
	TransactionID string          `json:"transaction_id"`
	UserEmail     string          `json:"user_email"`
	Items         []PlacedLine    `json:"items"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

type OrderStatusChangedPayload struct {
	TransactionID string `json:"transaction_id"`
	NewStatus     Status `json:"new_status"`
	UserEmail     string `json:"user_email"`
}
