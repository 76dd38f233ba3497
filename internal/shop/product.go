package shop

import "storefront_back_end/internal/models"

// DefaultProductName est le nom d'une bannière sans sous-titre
const DefaultProductName = "Product"

// Banner est le contenu textuel d'une bannière du slider
type Banner struct {
	Subtitle  string `json:"subtitle"`
	PriceText string `json:"priceText"`
	Image     string `json:"image"`
	Text      string `json:"text"`
}

// Showcase est le contenu textuel d'une vignette produit
type Showcase struct {
	Title             string  `json:"title"`
	PriceText         string  `json:"priceText"`
	OriginalPriceText string  `json:"originalPriceText"`
	Image             string  `json:"image"`
	Description       string  `json:"description"`
	Rating            *string `json:"rating,omitempty"`
}

// Product lit le produit d'une bannière
func (b Banner) Product() models.Product {
	name := b.Subtitle
	if name == "" {
		name = DefaultProductName
	}
	return models.Product{
		Name:        name,
		Price:       ExtractPrice(b.PriceText),
		Image:       b.Image,
		Description: b.Text,
	}
}

// Product lit le produit d'une vignette. Un prix barré illisible (0) est considéré absent.
func (s Showcase) Product() models.Product {
	p := models.Product{
		Name:        s.Title,
		Price:       ExtractPrice(s.PriceText),
		Image:       s.Image,
		Description: s.Description,
		Rating:      s.Rating,
	}
	if original := ExtractPrice(s.OriginalPriceText); original != 0 {
		p.OriginalPrice = &original
	}
	return p
}
