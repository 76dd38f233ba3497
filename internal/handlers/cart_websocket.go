package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storefront_back_end/internal/events"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/shop"
	"storefront_back_end/internal/storage"
)

const wsPingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Vitrine statique servie depuis une autre origine
		return true
	},
}

// CartWebSocket pousse la vue du panier à chaque modification faite par un autre
// onglet (ou une autre instance du serveur via Redis).
func (h *Handler) CartWebSocket(c *gin.Context) {
	profileID := c.GetString(middleware.ProfileKey)
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profil inconnu"})
		return
	}

	ctx := c.Request.Context()
	sub, err := h.Broker.Subscribe(ctx, events.CartChannel(profileID))
	if err != nil {
		log.Printf("❌ Abonnement panier %s: %v", profileID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur abonnement"})
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// Lecture en tâche de fond : détecte la fermeture côté client
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	store := storage.Prefixed(h.Store, storage.ProfilePrefix(profileID))
	send := func(kind string) bool {
		// Relecture complète : la vue est recalculée, jamais patchée
		m, err := shop.New(ctx, store)
		if err != nil {
			log.Printf("❌ Lecture panier %s: %v", profileID, err)
			return false
		}
		if err := conn.WriteJSON(gin.H{"type": kind, "cart": m.View(), "count": m.CartCount()}); err != nil {
			log.Printf("❌ Erreur envoi WebSocket: %v", err)
			return false
		}
		return true
	}

	if !send("connected") {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			if msg == events.CartUpdated && !send("cart_updated") {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}
