package models

// Product est un produit tel qu'il est lu sur un élément d'affichage de la vitrine
// (bannière ou vignette), avant son ajout au panier.
type Product struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Rating        *string  `json:"rating,omitempty"`
}

// NewCartItem crée une ligne de panier de quantité 1
func (p Product) NewCartItem() CartItem {
	return CartItem{
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Description:   p.Description,
		Rating:        p.Rating,
		Quantity:      1,
	}
}
