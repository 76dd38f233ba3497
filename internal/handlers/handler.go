package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"storefront_back_end/internal/events"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/shop"
	"storefront_back_end/internal/storage"
)

// Handler porte l'état de l'application partagé par toutes les routes
type Handler struct {
	Store     storage.Store
	Broker    events.Broker
	Sessions  sessions.Store
	JWTSecret string
}

func New(store storage.Store, broker events.Broker, sessionStore sessions.Store, jwtSecret string) *Handler {
	return &Handler{Store: store, Broker: broker, Sessions: sessionStore, JWTSecret: jwtSecret}
}

// manager charge l'état du profil de la requête, comme un chargement de page
func (h *Handler) manager(c *gin.Context) (*shop.Manager, bool) {
	profileID := c.GetString(middleware.ProfileKey)
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profil inconnu"})
		return nil, false
	}

	store := storage.Prefixed(h.Store, storage.ProfilePrefix(profileID))
	m, err := shop.New(c.Request.Context(), store)
	if err != nil {
		log.Printf("❌ Chargement profil %s: %v", profileID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage"})
		return nil, false
	}
	return m.WithBroker(h.Broker, profileID), true
}

// fail traduit une erreur d'opération en réponse : notification pour les erreurs de
// validation, 500 pour le reste.
func fail(c *gin.Context, err error) {
	var verr *shop.ValidationError
	if errors.As(err, &verr) {
		c.JSON(validationStatus(err), gin.H{
			"error":        verr.Notification.Message,
			"notification": verr.Notification,
		})
		return
	}

	log.Printf("❌ Erreur stockage: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage"})
}

func validationStatus(err error) int {
	switch {
	case errors.Is(err, shop.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, shop.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// Health répond tant que le backend de stockage répond
func Health(ping func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
