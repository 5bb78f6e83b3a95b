package token

import (
	"errors"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, expired, or missing user id. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

// AccessTokenTTL bounds the blast radius of a leaked access token.
const AccessTokenTTL = 15 * time.Minute

type Claims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// Manager issues and verifies stateless access tokens. Verification is a pure
// function of the token string and the signing secret, no storage involved.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

func (m *Manager) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.UTC().Unix(),
			ExpiresAt: expiresAt.UTC().Unix(),
		},
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *Manager) Verify(tokenString string) (string, error) {
	parsedClaims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, parsedClaims, func(t *jwt.Token) (interface{}, error) {
		method, ok := t.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != "HS256" {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid || parsedClaims.UserID == "" {
		return "", ErrInvalidToken
	}

	return parsedClaims.UserID, nil
}
