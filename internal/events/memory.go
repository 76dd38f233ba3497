package events

import (
	"context"
	"sync"
)

// subscriberBuffer borne la file d'un abonné lent ; au-delà, les messages sont perdus
const subscriberBuffer = 16

// Memory est un Broker en mémoire, limité au processus courant
type Memory struct {
	mu   sync.Mutex
	subs map[string]map[chan string]struct{}
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[string]map[chan string]struct{})}
}

func (m *Memory) Publish(_ context.Context, channel, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for ch := range m.subs[channel] {
		select {
		case ch <- payload:
		default:
		}
	}
	return nil
}

func (m *Memory) Subscribe(_ context.Context, channel string) (*Subscription, error) {
	ch := make(chan string, subscriberBuffer)

	m.mu.Lock()
	if m.subs[channel] == nil {
		m.subs[channel] = make(map[chan string]struct{})
	}
	m.subs[channel][ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{
		C: ch,
		close: func() error {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs[channel], ch)
			if len(m.subs[channel]) == 0 {
				delete(m.subs, channel)
			}
			close(ch)
			return nil
		},
	}, nil
}
