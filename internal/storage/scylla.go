package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
)

// ScyllaTable est la table clé/valeur utilisée par le backend Scylla.
//
//	CREATE TABLE IF NOT EXISTS kv_store (key text PRIMARY KEY, value blob);
const ScyllaTable = "kv_store"

// Scylla stocke les valeurs dans une table clé/valeur ScyllaDB
type Scylla struct {
	session *gocql.Session
}

func NewScylla(session *gocql.Session) *Scylla {
	return &Scylla{session: session}
}

// EnsureSchema crée la table si elle n'existe pas
func (s *Scylla) EnsureSchema(ctx context.Context) error {
	q := `CREATE TABLE IF NOT EXISTS ` + ScyllaTable + ` (key text PRIMARY KEY, value blob)`
	if err := s.session.Query(q).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("création table %s: %w", ScyllaTable, err)
	}
	return nil
}

func (s *Scylla) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.session.Query(`SELECT value FROM `+ScyllaTable+` WHERE key = ?`, key).
		WithContext(ctx).Scan(&value)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scylla get %s: %w", key, err)
	}
	return value, nil
}

func (s *Scylla) Set(ctx context.Context, key string, value []byte) error {
	err := s.session.Query(`INSERT INTO `+ScyllaTable+` (key, value) VALUES (?, ?)`, key, value).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla set %s: %w", key, err)
	}
	return nil
}

func (s *Scylla) Delete(ctx context.Context, key string) error {
	err := s.session.Query(`DELETE FROM `+ScyllaTable+` WHERE key = ?`, key).
		WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla del %s: %w", key, err)
	}
	return nil
}
