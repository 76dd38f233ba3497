package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/shop"
	"storefront_back_end/internal/utils"
)

// 🆕 POST /api/profile
// Crée un profil neuf (cookie) et renvoie un jeton Bearer pour les clients sans cookie.
func (h *Handler) CreateProfile(c *gin.Context) {
	profileID, err := middleware.NewProfile(c, h.Sessions)
	if err != nil {
		log.Printf("❌ Création profil: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur session"})
		return
	}

	token, err := utils.GenerateProfileToken(h.JWTSecret, profileID, utils.ProfileTokenTTL)
	if err != nil {
		log.Printf("❌ Génération jeton: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération jeton"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profileId": profileID, "token": token})
}

// 🟢 POST /api/auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var input shop.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	m, ok := h.manager(c)
	if !ok {
		return
	}

	out, err := m.Signup(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// 🟢 POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	m, ok := h.manager(c)
	if !ok {
		return
	}

	// Déjà connecté : pas de nouvelle transition, on renvoie vers l'accueil
	loggedIn, err := m.IsLoggedIn(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if loggedIn {
		c.JSON(http.StatusOK, shop.Outcome{Navigation: &shop.Navigation{To: shop.PageIndex}})
		return
	}

	out, err := m.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// 🔒 POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	m, ok := h.manager(c)
	if !ok {
		return
	}

	// Déjà déconnecté : pas de transition, on renvoie vers l'accueil
	loggedIn, err := m.IsLoggedIn(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if !loggedIn {
		c.JSON(http.StatusOK, shop.Outcome{Navigation: &shop.Navigation{To: shop.PageIndex}})
		return
	}

	out, err := m.Logout(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/auth/buttons/login
func (h *Handler) LoginButton(c *gin.Context) {
	m, ok := h.manager(c)
	if !ok {
		return
	}

	out, err := m.LoginButton(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/auth/buttons/signup
func (h *Handler) SignupButton(c *gin.Context) {
	m, ok := h.manager(c)
	if !ok {
		return
	}

	out, err := m.SignupButton(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
