package routes

import (
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, ping func(*gin.Context) error) {
	r.GET("/api/health", handlers.Health(ping))

	api := r.Group("/api")
	api.Use(middleware.Profile(h.Sessions, h.JWTSecret))
	{
		api.GET("/state", h.GetState)

		// Panier
		api.GET("/cart", h.GetCart)
		api.POST("/cart/add", h.AddToCart)
		api.GET("/cart/ws", h.CartWebSocket)
		api.PATCH("/cart/:index", h.UpdateQuantity)
		api.DELETE("/cart/:index", h.RemoveFromCart)

		// Authentification factice
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.POST("/auth/buttons/login", h.LoginButton)
		api.POST("/auth/buttons/signup", h.SignupButton)
	}

	// Création de profil : hors middleware, il ne doit pas créer de cookie au passage
	r.POST("/api/profile", h.CreateProfile)
}
