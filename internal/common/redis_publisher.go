package common

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"solo-skies/skyledger/internal/ledger"
)

// RedisEventPublisher mirrors ledger notifications onto a Redis
// Stream so external indexers can tail them.
type RedisEventPublisher struct {
	client *redis.Client
	stream string
}

func NewRedisEventPublisher(client *redis.Client, stream string) *RedisEventPublisher {
	return &RedisEventPublisher{client: client, stream: stream}
}

func (p *RedisEventPublisher) Record(ctx context.Context, ev ledger.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add event to stream: %w", err)
	}

	return nil
}
