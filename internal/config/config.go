package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends de stockage supportés
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendScylla = "scylla"
)

type Config struct {
	Port         string
	StoreBackend string
	// StoreTTL n'expire que le panier ; 0 = jamais
	StoreTTL time.Duration

	RedisHost     string
	RedisPassword string
	RedisDB       int

	ScyllaHosts    []string
	ScyllaKeyspace string
	ScyllaUsername string
	ScyllaPassword string

	SessionSecret string
	JWTSecret     string
	CORSOrigins   []string
	GinMode       string
}

// Load charge le fichier .env (s'il existe) puis lit la configuration depuis l'environnement
func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
	return FromEnv()
}

// FromEnv lit la configuration sans toucher au fichier .env
func FromEnv() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		StoreTTL:       getDuration("STORE_TTL", 0),
		RedisHost:      getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getInt("REDIS_DB", 0),
		ScyllaHosts:    splitList(getEnv("SCYLLA_HOSTS", "127.0.0.1")),
		ScyllaKeyspace: getEnv("SCYLLA_KEYSPACE", "storefront"),
		ScyllaUsername: os.Getenv("SCYLLA_USERNAME"),
		ScyllaPassword: os.Getenv("SCYLLA_PASSWORD"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		GinMode:        os.Getenv("GIN_MODE"),
	}

	// Secrets de dev : on prévient mais on ne bloque pas
	if cfg.SessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET manquant — secret de développement utilisé")
		cfg.SessionSecret = "dev_session_secret"
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET manquant — secret de développement utilisé")
		cfg.JWTSecret = "super_secret"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
