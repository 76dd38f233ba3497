package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/shop"
)

// cartResponse est la réponse commune des routes panier
func cartResponse(m *shop.Manager, n *shop.Notification) gin.H {
	resp := gin.H{
		"cart":  m.View(),
		"count": m.CartCount(),
	}
	if n != nil {
		resp["notification"] = n
	}
	return resp
}

// 🟢 GET /api/state
func (h *Handler) GetState(c *gin.Context) {
	m, ok := h.manager(c)
	if !ok {
		return
	}

	header, err := m.Header(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, header)
}

// 🟢 GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	m, ok := h.manager(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartResponse(m, nil))
}

// AddToCartInput est l'élément d'affichage sur lequel l'utilisateur a cliqué
type AddToCartInput struct {
	Banner   *shop.Banner   `json:"banner"`
	Showcase *shop.Showcase `json:"showcase"`
}

// 🟢 POST /api/cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	m, ok := h.manager(c)
	if !ok {
		return
	}

	// Sans élément d'affichage, rien à ajouter
	var n *shop.Notification
	var err error
	switch {
	case input.Showcase != nil:
		n, err = m.AddToCart(c.Request.Context(), input.Showcase.Product())
	case input.Banner != nil:
		n, err = m.AddToCart(c.Request.Context(), input.Banner.Product())
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cartResponse(m, n))
}

// 🟢 PATCH /api/cart/:index
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var input struct {
		Delta *int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Delta == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	m, ok := h.manager(c)
	if !ok {
		return
	}

	// Index illisible = élément absent : on ne fait rien
	if index, err := strconv.Atoi(c.Param("index")); err == nil {
		if _, err := m.UpdateQuantity(c.Request.Context(), index, *input.Delta); err != nil {
			fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, cartResponse(m, nil))
}

// ❌ DELETE /api/cart/:index
func (h *Handler) RemoveFromCart(c *gin.Context) {
	m, ok := h.manager(c)
	if !ok {
		return
	}

	if index, err := strconv.Atoi(c.Param("index")); err == nil {
		if _, err := m.RemoveFromCart(c.Request.Context(), index); err != nil {
			fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, cartResponse(m, nil))
}
