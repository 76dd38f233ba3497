package shop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/models"
)

func TestRenderCart_Empty(t *testing.T) {
	view := RenderCart(nil)

	assert.True(t, view.Empty)
	assert.NotNil(t, view.Rows)
	assert.Empty(t, view.Rows)
	assert.Equal(t, "$0.00", view.TotalLabel)
	assert.Equal(t, "$0.00", view.SubtotalLabel)
}

func TestRenderCart_Rows(t *testing.T) {
	original := 100.0
	zero := 0.0
	rating := "<b>5/5</b>"
	empty := ""

	view := RenderCart([]models.CartItem{
		{Name: "Jacket", Price: 80, OriginalPrice: &original, Rating: &rating, Quantity: 2},
		{Name: "Hat", Price: 15, OriginalPrice: &zero, Rating: &empty, Quantity: 1},
	})

	require.Len(t, view.Rows, 2)
	assert.False(t, view.Empty)
	assert.Equal(t, 3, view.Count)

	jacket := view.Rows[0]
	assert.Equal(t, 0, jacket.Index)
	assert.Equal(t, "$80.00", jacket.PriceLabel)
	assert.Equal(t, "$100.00", jacket.OriginalPriceLabel)
	assert.InDelta(t, 160, jacket.LineTotal, 1e-9)
	assert.Equal(t, "$160.00", jacket.LineTotalLabel)
	assert.Equal(t, rating, jacket.Rating)

	hat := view.Rows[1]
	assert.Nil(t, hat.OriginalPrice)
	assert.Empty(t, hat.OriginalPriceLabel)
	assert.Equal(t, RatingStars(DefaultRating), hat.Rating)

	assert.InDelta(t, 175, view.Total, 1e-9)
	assert.Equal(t, view.Total, view.Subtotal)
	assert.Equal(t, "$175.00", view.TotalLabel)
}

func TestRatingStars(t *testing.T) {
	stars := RatingStars(4)
	assert.Equal(t, 5, strings.Count(stars, "<ion-icon"))
	assert.Equal(t, 1, strings.Count(stars, `"star-outline"`))
	assert.Equal(t, 4, strings.Count(stars, `"star"`))
}

func TestRenderAuthButtons(t *testing.T) {
	out := RenderAuthButtons(nil)
	assert.False(t, out.LoggedIn)
	assert.Equal(t, "Login", out.LoginLabel)

	in := RenderAuthButtons(&models.User{Name: "Ann"})
	assert.True(t, in.LoggedIn)
	assert.Equal(t, "Ann", in.LoginLabel)
	assert.Equal(t, "person", in.LoginIcon)
	assert.Equal(t, "log-out-outline", in.SignupIcon)
}

func TestBannerAndShowcaseProducts(t *testing.T) {
	b := Banner{PriceText: "Starting at $ 20.00", Text: "Starting at $ 20.00", Image: "banner.jpg"}.Product()
	assert.Equal(t, DefaultProductName, b.Name)
	assert.InDelta(t, 20, b.Price, 1e-9)
	assert.Nil(t, b.OriginalPrice)

	s := Showcase{Title: "Jacket", PriceText: "$48.00", OriginalPriceText: "$75.00"}.Product()
	assert.Equal(t, "Jacket", s.Name)
	require.NotNil(t, s.OriginalPrice)
	assert.InDelta(t, 75, *s.OriginalPrice, 1e-9)

	noDel := Showcase{Title: "Hat", PriceText: "$10"}.Product()
	assert.Nil(t, noDel.OriginalPrice)
	assert.Nil(t, noDel.Rating)
}
