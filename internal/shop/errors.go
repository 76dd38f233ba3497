package shop

import "errors"

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError est une erreur récupérée localement : aucune modification d'état,
// seulement une notification pour l'utilisateur.
type ValidationError struct {
	Err          error
	Notification *Notification
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, message string) *ValidationError {
	return &ValidationError{Err: err, Notification: notify(NotifyError, message)}
}
