package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard JWT claims plus the actor fields the engine
// needs for attribution and transfer authorization. LocationID identifies the
// outlet/distributor/HQ the actor belongs to.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	LocationID  string `json:"location_id"`
}

// Actor is the identity extracted from a parsed token.
type Actor struct {
	UserID      string
	DisplayName string
	LocationID  string
}

// Generate signs a token carrying the actor identity.
func Generate(secret string, actor Actor, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      actor.UserID,
		DisplayName: actor.DisplayName,
		LocationID:  actor.LocationID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the actor identity. Returns an error
// if the token is invalid, expired, or signed with the wrong method.
func Parse(secret, tokenString string) (Actor, error) {
	if secret == "" {
		return Actor{}, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Actor{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Actor{}, fmt.Errorf("invalid claims")
	}
	return Actor{UserID: claims.UserID, DisplayName: claims.DisplayName, LocationID: claims.LocationID}, nil
}
