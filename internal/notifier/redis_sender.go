package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"
)

// RedisSender pushes notifications onto a per-recipient redis list, where the
// delivery frontend (polling or websocket fan-out) picks them up.
type RedisSender struct {
	client rueidis.Client
	prefix string
}

func NewRedisSender(client rueidis.Client, keyPrefix string) *RedisSender {
	return &RedisSender{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s:%s", r.prefix, msg.Recipient)
	cmd := r.client.B().Rpush().Key(key).Element(string(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}
