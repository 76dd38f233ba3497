package models

// User est un compte local. Le mot de passe est stocké et comparé en clair :
// c'est une authentification factice, pas une frontière de sécurité.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
