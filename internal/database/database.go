package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/events"
	"storefront_back_end/internal/shop"
	"storefront_back_end/internal/storage"
)

// Backends regroupe le stockage et la diffusion choisis par la configuration
type Backends struct {
	Store  storage.Store
	Broker events.Broker

	redis  *redis.Client
	scylla *gocql.Session
}

// Connect ouvre les backends selon STORE_BACKEND
func Connect(ctx context.Context, cfg config.Config) (*Backends, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Println("✅ Stockage en mémoire (les données sont perdues à l'arrêt)")
		return &Backends{Store: storage.NewMemory(), Broker: events.NewMemory()}, nil

	case config.BackendRedis:
		client, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Backends{
			Store:  storage.NewRedis(client, cfg.StoreTTL, shop.KeyCart),
			Broker: events.NewRedis(client),
			redis:  client,
		}, nil

	case config.BackendScylla:
		session, err := ConnectScylla(cfg)
		if err != nil {
			return nil, err
		}
		store := storage.NewScylla(session)
		if err := store.EnsureSchema(ctx); err != nil {
			session.Close()
			return nil, err
		}
		return &Backends{Store: store, Broker: events.NewMemory(), scylla: session}, nil

	default:
		return nil, fmt.Errorf("STORE_BACKEND inconnu: %q", cfg.StoreBackend)
	}
}

// Close ferme les connexions ouvertes
func (b *Backends) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Printf("⚠️ Fermeture Redis: %v", err)
		}
		log.Println("🔌 Connexion Redis fermée")
	}
	if b.scylla != nil {
		b.scylla.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
}

// Ping vérifie que le backend répond
func (b *Backends) Ping(ctx context.Context) error {
	if b.redis != nil {
		return b.redis.Ping(ctx).Err()
	}
	if b.scylla != nil {
		return b.scylla.Query("SELECT now() FROM system.local").WithContext(ctx).Exec()
	}
	return nil
}

// =============================================
// REDIS
// =============================================

func ConnectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}
	log.Println("✅ Connecté à Redis:", cfg.RedisHost)
	return client, nil
}

// =============================================
// SCYLLA DB
// =============================================

func ConnectScylla(cfg config.Config) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.ScyllaHosts...)
	cluster.Keyspace = cfg.ScyllaKeyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 20
	cluster.ReconnectInterval = 1 * time.Second
	if cfg.ScyllaUsername != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.ScyllaUsername,
			Password: cfg.ScyllaPassword,
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session ScyllaDB (%s): %w", cfg.ScyllaKeyspace, err)
	}
	log.Printf("✅ Session ScyllaDB ouverte pour keyspace '%s'", cfg.ScyllaKeyspace)
	return session, nil
}
