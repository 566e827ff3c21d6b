package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/kafkax"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/redisx"
)

type Service struct {
	Redis       *redis.Client
	Mailer      Mailer
	ServiceName string
}

// HandleStatusChanged is the consumer handler for order.status.changed.
// Each event targets exactly one customer; duplicates are dropped via the
// redis dedup key on event_id.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	seen, _ := redisx.Exists(ctx, s.Redis, dkey)
	if seen {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	// best-effort delivery: a failed send must not re-queue the event, the
	// dedup key is already consumed
	if err := s.Mailer.SendStatusUpdate(ctx, p.UserEmail, p.TransactionID, p.NewStatus); err != nil {
		log.Printf("status notification to %s (tx %s): %v", p.UserEmail, p.TransactionID, err)
	}
	return nil
}
