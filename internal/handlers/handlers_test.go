package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/events"
	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/routes"
	"storefront_back_end/internal/shop"
	"storefront_back_end/internal/storage"
)

const secret = "test_secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newRouterWithBroker(t, events.NewMemory())
}

func newRouterWithBroker(t *testing.T, broker events.Broker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := handlers.New(storage.NewMemory(), broker, middleware.NewSessionStore(secret, false), secret)
	r := gin.New()
	routes.RegisterRoutes(r, h, func(*gin.Context) error { return nil })
	return r
}

// browser rejoue le cookie de profil comme le ferait un navigateur
type browser struct {
	t      *testing.T
	r      http.Handler
	cookie *http.Cookie
	token  string
}

func (b *browser) do(method, path string, body any) *httptest.ResponseRecorder {
	b.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(b.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	} else if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionName {
			b.cookie = c
		}
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type cartResp struct {
	Cart         shop.CartView      `json:"cart"`
	Count        int                `json:"count"`
	Notification *shop.Notification `json:"notification"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResp {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out cartResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func showcase(title, price string) gin.H {
	return gin.H{"showcase": gin.H{"title": title, "priceText": price, "image": "img.jpg"}}
}

func TestCart_Flow(t *testing.T) {
	b := &browser{t: t, r: newRouter(t)}

	resp := decodeCart(t, b.do(http.MethodGet, "/api/cart", nil))
	assert.True(t, resp.Cart.Empty)
	require.NotNil(t, b.cookie, "profile cookie issued on first visit")

	resp = decodeCart(t, b.do(http.MethodPost, "/api/cart/add", showcase("Shoe", "$49.99")))
	require.NotNil(t, resp.Notification)
	assert.Equal(t, "Shoe added to cart!", resp.Notification.Message)

	b.do(http.MethodPost, "/api/cart/add", showcase("Shoe", "$49.99"))
	resp = decodeCart(t, b.do(http.MethodPost, "/api/cart/add", gin.H{"banner": gin.H{"priceText": "$ 20", "text": "Summer sale"}}))
	require.Len(t, resp.Cart.Rows, 2)
	assert.Equal(t, shop.DefaultProductName, resp.Cart.Rows[1].Name)
	assert.Equal(t, 3, resp.Count)

	resp = decodeCart(t, b.do(http.MethodPatch, "/api/cart/0", gin.H{"delta": -99}))
	assert.Equal(t, 1, resp.Cart.Rows[0].Quantity)

	resp = decodeCart(t, b.do(http.MethodDelete, "/api/cart/1", nil))
	require.Len(t, resp.Cart.Rows, 1)
	assert.Equal(t, "$49.99", resp.Cart.TotalLabel)
}

func TestCart_ZeroPriceAndMissingElementsAreNoops(t *testing.T) {
	b := &browser{t: t, r: newRouter(t)}

	resp := decodeCart(t, b.do(http.MethodPost, "/api/cart/add", showcase("Mystery", "Ask us")))
	assert.Nil(t, resp.Notification)
	assert.True(t, resp.Cart.Empty)

	resp = decodeCart(t, b.do(http.MethodPost, "/api/cart/add", gin.H{}))
	assert.True(t, resp.Cart.Empty)

	decodeCart(t, b.do(http.MethodPost, "/api/cart/add", showcase("Shoe", "$10")))

	for _, path := range []string{"/api/cart/7", "/api/cart/-1", "/api/cart/abc"} {
		resp = decodeCart(t, b.do(http.MethodDelete, path, nil))
		assert.Len(t, resp.Cart.Rows, 1, path)
		resp = decodeCart(t, b.do(http.MethodPatch, path, gin.H{"delta": 1}))
		assert.Equal(t, 1, resp.Cart.Rows[0].Quantity, path)
	}
}

func TestCart_UpdateRequiresDelta(t *testing.T) {
	b := &browser{t: t, r: newRouter(t)}
	w := b.do(http.MethodPatch, "/api/cart/0", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCart_ProfilesAreIsolated(t *testing.T) {
	r := newRouter(t)
	alice := &browser{t: t, r: r}
	bob := &browser{t: t, r: r}

	decodeCart(t, alice.do(http.MethodPost, "/api/cart/add", showcase("Shoe", "$10")))
	resp := decodeCart(t, bob.do(http.MethodGet, "/api/cart", nil))
	assert.True(t, resp.Cart.Empty)
}

func TestAuth_Flow(t *testing.T) {
	b := &browser{t: t, r: newRouter(t)}

	w := b.do(http.MethodPost, "/api/auth/signup", shop.SignupInput{Name: "Ann", Email: "ann@x.com", Password: "p1", ConfirmPassword: "p1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = b.do(http.MethodPost, "/api/auth/signup", shop.SignupInput{Name: "Bob", Email: "ann@x.com", Password: "p2", ConfirmPassword: "p2"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", decode(t, w)["error"])

	w = b.do(http.MethodPost, "/api/auth/signup", shop.SignupInput{Name: "Cid", Email: "cid@x.com", Password: "a", ConfirmPassword: "b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = b.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid email or password", body["error"])
	assert.NotNil(t, body["notification"])

	w = b.do(http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state shop.HeaderState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.False(t, state.Auth.LoggedIn)

	w = b.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	var out shop.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Login successful!", out.Notification.Message)
	assert.Equal(t, shop.PageIndex, out.Navigation.To)

	// Déjà connecté : navigation seulement
	w = b.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	out = shop.Outcome{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Nil(t, out.Notification)
	assert.Equal(t, shop.PageIndex, out.Navigation.To)

	w = b.do(http.MethodGet, "/api/state", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.True(t, state.Auth.LoggedIn)
	assert.Equal(t, "Ann", state.Auth.LoginLabel)

	// Le bouton "Logout" de l'en-tête déconnecte
	w = b.do(http.MethodPost, "/api/auth/buttons/signup", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = shop.Outcome{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Logged out successfully", out.Notification.Message)

	w = b.do(http.MethodPost, "/api/auth/buttons/login", nil)
	out = shop.Outcome{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, shop.PageLogin, out.Navigation.To)

	w = b.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = shop.Outcome{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Nil(t, out.Notification)
	assert.Equal(t, shop.PageIndex, out.Navigation.To)
}

func TestAuth_LogoutRoute(t *testing.T) {
	broker := events.NewMemory()
	b := &browser{t: t, r: newRouterWithBroker(t, broker)}

	w := b.do(http.MethodPost, "/api/profile", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	profileID, _ := decode(t, w)["profileId"].(string)
	require.NotEmpty(t, profileID)

	sub, err := broker.Subscribe(context.Background(), events.AuthChannel(profileID))
	require.NoError(t, err)
	defer sub.Close()

	// Déconnecté : navigation seulement, aucune transition publiée
	w = b.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out shop.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Nil(t, out.Notification)
	require.NotNil(t, out.Navigation)
	assert.Equal(t, shop.PageIndex, out.Navigation.To)

	select {
	case msg := <-sub.C:
		t.Fatalf("unexpected auth event %q", msg)
	case <-time.After(100 * time.Millisecond):
	}

	b.do(http.MethodPost, "/api/auth/signup", shop.SignupInput{Name: "Ann", Email: "ann@x.com", Password: "p1", ConfirmPassword: "p1"})
	require.Equal(t, http.StatusOK, b.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "p1"}).Code)
	select {
	case msg := <-sub.C:
		assert.Equal(t, events.AuthChanged, msg)
	case <-time.After(time.Second):
		t.Fatal("no auth event on login")
	}

	// Connecté : vraie déconnexion
	w = b.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = shop.Outcome{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotNil(t, out.Notification)
	assert.Equal(t, "Logged out successfully", out.Notification.Message)
	assert.Equal(t, shop.PageReload, out.Navigation.To)

	select {
	case msg := <-sub.C:
		assert.Equal(t, events.AuthChanged, msg)
	case <-time.After(time.Second):
		t.Fatal("no auth event on logout")
	}
}

func TestProfile_BearerClient(t *testing.T) {
	r := newRouter(t)
	b := &browser{t: t, r: r}

	w := b.do(http.MethodPost, "/api/profile", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	headless := &browser{t: t, r: r, token: token}
	decodeCart(t, headless.do(http.MethodPost, "/api/cart/add", showcase("Shoe", "$10")))

	// Le cookie et le jeton désignent le même profil
	resp := decodeCart(t, b.do(http.MethodGet, "/api/cart", nil))
	assert.Len(t, resp.Cart.Rows, 1)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestCartWebSocket_PushesUpdates(t *testing.T) {
	r := newRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	b := &browser{t: t, r: r}
	w := b.do(http.MethodPost, "/api/profile", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	token := decode(t, w)["token"].(string)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/cart/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	var msg struct {
		Type  string        `json:"type"`
		Cart  shop.CartView `json:"cart"`
		Count int           `json:"count"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "connected", msg.Type)
	assert.True(t, msg.Cart.Empty)

	// Un autre "onglet" du même profil modifie le panier
	tab := &browser{t: t, r: r, token: token}
	decodeCart(t, tab.do(http.MethodPost, "/api/cart/add", showcase("Shoe", "$10")))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "cart_updated", msg.Type)
	assert.Equal(t, 1, msg.Count)
	require.Len(t, msg.Cart.Rows, 1)
	assert.Equal(t, "Shoe", msg.Cart.Rows[0].Name)
}
