package events

import (
	"context"
	"sync"
)

// Messages publiés sur les canaux
const (
	CartUpdated = "updated"
	AuthChanged = "auth"
)

// CartChannel renvoie le canal de synchronisation du panier d'un profil
func CartChannel(profileID string) string {
	return "cart:" + profileID
}

// AuthChannel renvoie le canal de l'état de connexion d'un profil
func AuthChannel(profileID string) string {
	return "auth:" + profileID
}

// Broker diffuse des notifications de changement entre les requêtes d'un même profil
type Broker interface {
	Publish(ctx context.Context, channel, payload string) error
	Subscribe(ctx context.Context, channel string) (*Subscription, error)
}

// Subscription reçoit les messages d'un canal jusqu'à Close
type Subscription struct {
	C <-chan string

	once  sync.Once
	close func() error
}

func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() { err = s.close() })
	return err
}
