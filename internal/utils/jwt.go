package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ProfileTokenTTL est la durée de vie d'un jeton de profil (30 jours, comme le panier)
const ProfileTokenTTL = 30 * 24 * time.Hour

// GenerateProfileToken signe un jeton HS256 portant l'identifiant du profil
func GenerateProfileToken(secret, profileID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"profile_id": profileID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseProfileToken vérifie la signature et l'expiration puis renvoie l'identifiant du profil
func ParseProfileToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("claims invalides")
	}

	profileID, ok := claims["profile_id"].(string)
	if !ok || profileID == "" {
		return "", errors.New("profile_id manquant")
	}
	return profileID, nil
}
