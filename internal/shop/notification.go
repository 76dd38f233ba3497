package shop

import "time"

// Types de notification affichés par la vitrine
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// Pages de la vitrine
const (
	PageIndex  = "index.html"
	PageCart   = "cart.html"
	PageLogin  = "login.html"
	PageSignup = "signup.html"
	PageReload = "reload"
)

// Délais purement visuels, transmis au client
const (
	NotificationDuration = 3 * time.Second
	RedirectDelay        = 1500 * time.Millisecond
)

// Notification est un message éphémère destiné à l'utilisateur
type Notification struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	DisplayMS int64  `json:"displayMs"`
}

func notify(kind, message string) *Notification {
	return &Notification{Message: message, Type: kind, DisplayMS: NotificationDuration.Milliseconds()}
}

// Navigation demande au client de changer de page après un délai
type Navigation struct {
	To      string `json:"to"`
	DelayMS int64  `json:"delayMs"`
}

func navigate(page string, delay time.Duration) *Navigation {
	return &Navigation{To: page, DelayMS: delay.Milliseconds()}
}

// Outcome est le résultat visible d'une action : notification et/ou navigation
type Outcome struct {
	Notification *Notification `json:"notification,omitempty"`
	Navigation   *Navigation   `json:"navigation,omitempty"`
}
