package shop

import (
	"fmt"
	"regexp"
	"strconv"
)

// Premier nombre décimal du texte, éventuellement précédé de "$"
var priceRe = regexp.MustCompile(`\$?(\d+\.?\d*)`)

// ExtractPrice lit un prix dans un texte libre ("$49.99", "Now only $20").
// Renvoie 0 si le texte est vide ou ne contient aucun nombre : un produit à 0
// n'entre jamais dans le panier.
func ExtractPrice(text string) float64 {
	if text == "" {
		return 0
	}
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	price, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return price
}

// FormatMoney formate un montant comme la vitrine ("$149.97")
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
