package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"storefront_back_end/internal/utils"
)

const (
	// ProfileKey est la clé du contexte gin portant l'identifiant du profil
	ProfileKey = "profile_id"

	SessionName = "storefront_profile"
)

// NewSessionStore crée le cookie store signé qui porte l'identifiant du profil
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Profile résout le profil navigateur de la requête : jeton Bearer d'abord, cookie
// de session ensuite ; sans l'un ni l'autre, un nouveau profil est créé.
func Profile(store sessions.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
				return
			}

			profileID, err := utils.ParseProfileToken(jwtSecret, parts[1])
			if err != nil {
				log.Printf("❌ Jeton de profil refusé: %v", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
				return
			}
			c.Set(ProfileKey, profileID)
			c.Next()
			return
		}

		// Un cookie illisible (secret changé) donne une session neuve : on ne bloque pas
		session, _ := store.Get(c.Request, SessionName)
		profileID, _ := session.Values[ProfileKey].(string)
		if profileID == "" {
			profileID = uuid.NewString()
			session.Values[ProfileKey] = profileID
			if err := session.Save(c.Request, c.Writer); err != nil {
				log.Printf("❌ Sauvegarde session impossible: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erreur session"})
				return
			}
			log.Printf("🆕 Nouveau profil %s", profileID)
		}

		c.Set(ProfileKey, profileID)
		c.Next()
	}
}

// NewProfile force la création d'un profil neuf dans le cookie et renvoie son identifiant
func NewProfile(c *gin.Context, store sessions.Store) (string, error) {
	session, _ := store.Get(c.Request, SessionName)
	profileID := uuid.NewString()
	session.Values[ProfileKey] = profileID
	if err := session.Save(c.Request, c.Writer); err != nil {
		return "", err
	}
	return profileID, nil
}
