package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis diffuse via le pub/sub Redis, partagé entre toutes les instances du serveur
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Publish(ctx context.Context, channel, payload string) error {
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	pubsub := r.client.Subscribe(ctx, channel)

	// Attendre la confirmation pour ne rien rater entre l'abonnement et le premier Publish
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", channel, err)
	}

	out := make(chan string, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			default:
			}
		}
	}()

	return &Subscription{C: out, close: pubsub.Close}, nil
}
