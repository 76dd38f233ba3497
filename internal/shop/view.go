package shop

import (
	"strings"

	"storefront_back_end/internal/models"
)

// DefaultRating est la note affichée pour une ligne sans note
const DefaultRating = 4

// CartRow est une ligne affichable du panier
type CartRow struct {
	Index              int      `json:"index"`
	Name               string   `json:"name"`
	Image              string   `json:"image"`
	Description        string   `json:"description"`
	Rating             string   `json:"rating"`
	Price              float64  `json:"price"`
	PriceLabel         string   `json:"priceLabel"`
	OriginalPrice      *float64 `json:"originalPrice,omitempty"`
	OriginalPriceLabel string   `json:"originalPriceLabel,omitempty"`
	Quantity           int      `json:"quantity"`
	LineTotal          float64  `json:"lineTotal"`
	LineTotalLabel     string   `json:"lineTotalLabel"`
}

// CartView est la projection complète du panier. Empty distingue le panier vide
// d'une liste vide.
type CartView struct {
	Empty         bool      `json:"empty"`
	Rows          []CartRow `json:"rows"`
	Count         int       `json:"count"`
	Subtotal      float64   `json:"subtotal"`
	SubtotalLabel string    `json:"subtotalLabel"`
	Total         float64   `json:"total"`
	TotalLabel    string    `json:"totalLabel"`
}

// RenderCart recalcule la vue du panier ; fonction pure de son argument
func RenderCart(cart []models.CartItem) CartView {
	view := CartView{
		Empty: len(cart) == 0,
		Rows:  make([]CartRow, 0, len(cart)),
		Count: cartCount(cart),
	}

	total := 0.0
	for i, item := range cart {
		lineTotal := item.LineTotal()
		total += lineTotal

		row := CartRow{
			Index:          i,
			Name:           item.Name,
			Image:          item.Image,
			Description:    item.Description,
			Rating:         RatingStars(DefaultRating),
			Price:          item.Price,
			PriceLabel:     FormatMoney(item.Price),
			Quantity:       item.Quantity,
			LineTotal:      lineTotal,
			LineTotalLabel: FormatMoney(lineTotal),
		}
		if item.Rating != nil && *item.Rating != "" {
			row.Rating = *item.Rating
		}
		if item.OriginalPrice != nil && *item.OriginalPrice != 0 {
			row.OriginalPrice = item.OriginalPrice
			row.OriginalPriceLabel = FormatMoney(*item.OriginalPrice)
		}
		view.Rows = append(view.Rows, row)
	}

	// Pas de taxes ni de livraison : sous-total = total
	view.Subtotal = total
	view.Total = total
	view.SubtotalLabel = FormatMoney(total)
	view.TotalLabel = FormatMoney(total)
	return view
}

// RatingStars génère le balisage de 5 étoiles dont rating pleines
func RatingStars(rating int) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		name := "star-outline"
		if i < rating {
			name = "star"
		}
		b.WriteString(`<ion-icon name="` + name + `"></ion-icon>`)
	}
	return b.String()
}

// AuthButtons décrit les deux boutons d'en-tête selon l'état de session
type AuthButtons struct {
	LoggedIn    bool   `json:"loggedIn"`
	LoginLabel  string `json:"loginLabel"`
	LoginIcon   string `json:"loginIcon"`
	SignupLabel string `json:"signupLabel"`
	SignupIcon  string `json:"signupIcon"`
}

// RenderAuthButtons projette la session sur les boutons d'en-tête
func RenderAuthButtons(current *models.User) AuthButtons {
	if current == nil {
		return AuthButtons{
			LoginLabel:  "Login",
			LoginIcon:   "log-in-outline",
			SignupLabel: "Sign Up",
			SignupIcon:  "person-add-outline",
		}
	}
	return AuthButtons{
		LoggedIn:    true,
		LoginLabel:  current.Name,
		LoginIcon:   "person",
		SignupLabel: "Logout",
		SignupIcon:  "log-out-outline",
	}
}

// HeaderState est l'état dérivé rafraîchi à chaque chargement de page
type HeaderState struct {
	CartCount int         `json:"cartCount"`
	CartLink  string      `json:"cartLink"` // cible de l'icône panier
	Auth      AuthButtons `json:"auth"`
}
