// Package utils holds the sandbox's token, password and response helpers.
package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ray-remotestate/padipos/models"
)

const AccessTokenTTL = 24 * time.Hour

// Claims is the payload of a sandbox access token.
type Claims struct {
	UserID string   `json:"userId"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(secret []byte, user models.User, now time.Time) (string, error) {
	claims := &Claims{
		UserID: string(user.ID),
		Roles:  []string{string(user.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccessToken verifies signature and expiry.
func ParseAccessToken(secret []byte, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func HashPassword(pw string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(bytes), err
}

type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// RespondJSON writes the {message, data} envelope every endpoint uses.
func RespondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Message: message, Data: data}); err != nil {
		logrus.WithError(err).Error("failed to write response")
	}
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, message, nil)
}
