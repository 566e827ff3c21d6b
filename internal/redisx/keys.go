package redisx

import "time"

const (
	// Idempotency for checkout: idem:checkout:{transaction_id} -> "1"
	KeyIdemCheckout = "idem:checkout:%s"

	// Cached status per transaction: tx_status:{transaction_id} -> {"status": "..."}
	KeyTxStatus = "tx_status:%s"

	// Dedup for event consumers: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
