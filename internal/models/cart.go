package models

// CartItem est une ligne du panier. L'identité d'une ligne est son nom d'affichage
// (comparaison exacte, sensible à la casse).
type CartItem struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Rating        *string  `json:"rating,omitempty"`
	Quantity      int      `json:"quantity"`
}

// LineTotal renvoie prix × quantité
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
