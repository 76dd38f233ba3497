package shop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"storefront_back_end/internal/events"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
)

// Clés de stockage d'un profil
const (
	KeyCart        = "cart"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

// Manager est l'état de la boutique d'un profil : panier, comptes locaux et session.
// Le panier est chargé une fois à la création puis réécrit en entier à chaque
// modification ; deux Managers sur le même profil se comportent comme deux onglets
// (la dernière écriture gagne).
type Manager struct {
	mu        sync.Mutex
	store     storage.Store
	broker    events.Broker
	profileID string
	cart      []models.CartItem
}

// New charge le panier depuis le stockage. Une valeur absente ou illisible donne un
// panier vide ; seule une panne du backend est une erreur.
func New(ctx context.Context, store storage.Store) (*Manager, error) {
	m := &Manager{store: store}

	cart, err := loadList[models.CartItem](ctx, store, KeyCart)
	if err != nil {
		return nil, err
	}
	m.cart = cart
	return m, nil
}

// WithBroker active la diffusion des changements sur les canaux du profil
func (m *Manager) WithBroker(b events.Broker, profileID string) *Manager {
	m.broker = b
	m.profileID = profileID
	return m
}

// Cart renvoie une copie du panier
func (m *Manager) Cart() []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CartItem(nil), m.cart...)
}

// CartCount renvoie le nombre d'articles (somme des quantités) affiché sur le badge
func (m *Manager) CartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cartCount(m.cart)
}

// View projette le panier courant
func (m *Manager) View() CartView {
	return RenderCart(m.Cart())
}

// AddToCart ajoute un produit ou incrémente la ligne du même nom.
// Un produit sans prix (0) est ignoré : renvoie nil, nil.
func (m *Manager) AddToCart(ctx context.Context, p models.Product) (*Notification, error) {
	if p.Price == 0 {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.cloneCart()
	found := false
	for i := range next {
		if next[i].Name == p.Name {
			next[i].Quantity = addQuantity(next[i].Quantity, 1)
			found = true
			break
		}
	}
	if !found {
		next = append(next, p.NewCartItem())
	}

	if err := m.saveCart(ctx, next); err != nil {
		return nil, err
	}
	return notify(NotifySuccess, fmt.Sprintf("%s added to cart!", p.Name)), nil
}

// UpdateQuantity ajoute delta à la quantité de la ligne index, avec un minimum de 1
// et saturée à math.MaxInt. Un index hors limites ne fait rien (false).
func (m *Manager) UpdateQuantity(ctx context.Context, index, delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.cart) {
		return false, nil
	}

	next := m.cloneCart()
	next[index].Quantity = addQuantity(next[index].Quantity, delta)
	if err := m.saveCart(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFromCart supprime la ligne index. Un index hors limites ne fait rien (false).
func (m *Manager) RemoveFromCart(ctx context.Context, index int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.cart) {
		return false, nil
	}

	next := m.cloneCart()
	next = append(next[:index], next[index+1:]...)
	if err := m.saveCart(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// saveCart réécrit tout le panier puis prévient les abonnés. m.cart ne change
// qu'après une écriture réussie. Appelé sous m.mu.
func (m *Manager) saveCart(ctx context.Context, next []models.CartItem) error {
	if next == nil {
		next = []models.CartItem{}
	}
	if err := storage.SetJSON(ctx, m.store, KeyCart, next); err != nil {
		return fmt.Errorf("sauvegarde panier: %w", err)
	}
	m.cart = next
	m.publish(ctx, events.CartChannel(m.profileID), events.CartUpdated)
	return nil
}

func (m *Manager) cloneCart() []models.CartItem {
	return append([]models.CartItem(nil), m.cart...)
}

// addQuantity borne q+delta à [1, math.MaxInt] sans débordement
func addQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && q < math.MinInt-delta:
		return 1
	}
	return max(1, q+delta)
}

// publish est best effort : une erreur de diffusion n'annule jamais l'opération
func (m *Manager) publish(ctx context.Context, channel, payload string) {
	if m.broker == nil {
		return
	}
	if err := m.broker.Publish(ctx, channel, payload); err != nil {
		log.Printf("⚠️ Diffusion %s impossible: %v", channel, err)
	}
}

func cartCount(cart []models.CartItem) int {
	total := 0
	for _, item := range cart {
		total += item.Quantity
	}
	return total
}

// loadList lit une collection JSON ; absente ou corrompue, elle est vide
func loadList[T any](ctx context.Context, store storage.Store, key string) ([]T, error) {
	var list []T
	err := storage.GetJSON(ctx, store, key, &list)
	switch {
	case err == nil:
		return list, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case errors.Is(err, storage.ErrMalformed):
		log.Printf("⚠️ Valeur %q illisible, collection vide utilisée: %v", key, err)
		return nil, nil
	default:
		return nil, fmt.Errorf("lecture %s: %w", key, err)
	}
}
