package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound est renvoyée quand la clé n'existe pas
	ErrNotFound = errors.New("storage: key not found")
	// ErrMalformed est renvoyée quand la valeur stockée n'est pas du JSON valide
	ErrMalformed = errors.New("storage: malformed value")
)

// Store est un stockage clé/valeur minimal, l'équivalent serveur du localStorage
// d'un navigateur. Chaque écriture remplace entièrement la valeur.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON lit et décode la valeur d'une clé
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return nil
}

// SetJSON encode et écrit la valeur complète d'une clé
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encodage %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

type prefixed struct {
	inner  Store
	prefix string
}

// Prefixed restreint un Store à un espace de noms (un profil navigateur)
func Prefixed(s Store, prefix string) Store {
	return &prefixed{inner: s, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

// ProfilePrefix renvoie le préfixe de clés d'un profil
func ProfilePrefix(profileID string) string {
	return "profile:" + profileID + ":"
}
