package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/routes"
)

func main() {
	cfg := config.Load()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	backends, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Échec initialisation stockage: %v", err)
	}
	defer backends.Close()

	sessionStore := middleware.NewSessionStore(cfg.SessionSecret, gin.Mode() == gin.ReleaseMode)
	h := handlers.New(backends.Store, backends.Broker, sessionStore, cfg.JWTSecret)

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	routes.RegisterRoutes(r, h, func(c *gin.Context) error {
		return backends.Ping(c.Request.Context())
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("🚀 Serveur vitrine lancé sur le port", cfg.Port, "(stockage:", cfg.StoreBackend+")")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Serveur arrêté: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Arrêt du serveur...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Arrêt forcé: %v", err)
	}
}

// corsConfig autorise la vitrine statique à appeler l'API avec ses cookies
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Avec des cookies, "*" est interdit : on renvoie l'origine appelante
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
