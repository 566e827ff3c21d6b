package orders

const (
	TopicOrderPlaced        = "order.placed"
	TopicOrderStatusChanged = "order.status.changed"
)

// Partition key = transaction_id, so events for one checkout stay ordered.
func PartitionKey(transactionID string) []byte { return []byte(transactionID) }
