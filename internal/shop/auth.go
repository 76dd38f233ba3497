package shop

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront_back_end/internal/events"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storage"
)

// SignupInput reprend les champs du formulaire d'inscription
type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Signup enregistre un compte local. Erreurs de validation : *ValidationError
// (mots de passe différents, email déjà pris), sans modification d'état.
func (m *Manager) Signup(ctx context.Context, in SignupInput) (*Outcome, error) {
	if in.Password != in.ConfirmPassword {
		return nil, invalid(ErrPasswordMismatch, "Passwords do not match")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := loadList[models.User](ctx, m.store, KeyUsers)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == in.Email {
			return nil, invalid(ErrEmailTaken, "Email already registered")
		}
	}

	users = append(users, models.User{Name: in.Name, Email: in.Email, Password: in.Password})
	if err := storage.SetJSON(ctx, m.store, KeyUsers, users); err != nil {
		return nil, fmt.Errorf("sauvegarde utilisateurs: %w", err)
	}

	return &Outcome{
		Notification: notify(NotifySuccess, "Registration successful!"),
		Navigation:   navigate(PageLogin, RedirectDelay),
	}, nil
}

// Login ouvre une session si email et mot de passe correspondent exactement à un compte.
// L'échec est générique : on ne dit pas si l'email existe.
func (m *Manager) Login(ctx context.Context, email, password string) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := loadList[models.User](ctx, m.store, KeyUsers)
	if err != nil {
		return nil, err
	}

	var found *models.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return nil, invalid(ErrInvalidCredentials, "Invalid email or password")
	}

	// La session est une copie, pas une référence vers le compte
	if err := storage.SetJSON(ctx, m.store, KeyCurrentUser, *found); err != nil {
		return nil, fmt.Errorf("sauvegarde session: %w", err)
	}
	m.publish(ctx, events.AuthChannel(m.profileID), events.AuthChanged)

	return &Outcome{
		Notification: notify(NotifySuccess, "Login successful!"),
		Navigation:   navigate(PageIndex, RedirectDelay),
	}, nil
}

// Logout efface la session (et seulement elle). Réussit toujours côté utilisateur.
func (m *Manager) Logout(ctx context.Context) (*Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, KeyCurrentUser); err != nil {
		return nil, fmt.Errorf("suppression session: %w", err)
	}
	m.publish(ctx, events.AuthChannel(m.profileID), events.AuthChanged)

	return &Outcome{
		Notification: notify(NotifyInfo, "Logged out successfully"),
		Navigation:   navigate(PageReload, RedirectDelay),
	}, nil
}

// CurrentUser renvoie la session, nil si déconnecté. Une session illisible vaut déconnexion.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	err := storage.GetJSON(ctx, m.store, KeyCurrentUser, &u)
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case errors.Is(err, storage.ErrMalformed):
		log.Printf("⚠️ Session illisible, considérée déconnectée: %v", err)
		return nil, nil
	default:
		return nil, fmt.Errorf("lecture session: %w", err)
	}
}

// IsLoggedIn indique si une session est ouverte
func (m *Manager) IsLoggedIn(ctx context.Context) (bool, error) {
	u, err := m.CurrentUser(ctx)
	return u != nil, err
}

// Header renvoie l'état dérivé : badge du panier et boutons d'authentification
func (m *Manager) Header(ctx context.Context) (HeaderState, error) {
	u, err := m.CurrentUser(ctx)
	if err != nil {
		return HeaderState{}, err
	}
	return HeaderState{CartCount: m.CartCount(), CartLink: PageCart, Auth: RenderAuthButtons(u)}, nil
}

// LoginButton : connecté, le bouton n'a pas d'effet ; sinon il mène au formulaire
func (m *Manager) LoginButton(ctx context.Context) (*Outcome, error) {
	loggedIn, err := m.IsLoggedIn(ctx)
	if err != nil {
		return nil, err
	}
	if loggedIn {
		return &Outcome{}, nil
	}
	return &Outcome{Navigation: navigate(PageLogin, 0)}, nil
}

// SignupButton : connecté, le bouton déconnecte ; sinon il mène au formulaire
func (m *Manager) SignupButton(ctx context.Context) (*Outcome, error) {
	loggedIn, err := m.IsLoggedIn(ctx)
	if err != nil {
		return nil, err
	}
	if loggedIn {
		return m.Logout(ctx)
	}
	return &Outcome{Navigation: navigate(PageSignup, 0)}, nil
}
