package helpers

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// SignedDetails are the claims carried by every session token.
type SignedDetails struct {
	ArtistID string `json:"artistid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

var ErrInvalidToken = errors.New("the token is invalid")

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken signs an HS256 token for the given subject and returns it
// with its expiry.
func (m *TokenManager) GenerateToken(artistID, username, role string) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.ttl)
	claims := &SignedDetails{
		ArtistID: artistID,
		Username: username,
		Role:     role,
		StandardClaims: jwt.StandardClaims{
			Subject:   artistID,
			IssuedAt:  issued.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expires, nil
}

// ValidateToken verifies signature, algorithm and expiry.
func (m *TokenManager) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(signedToken, &SignedDetails{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt < m.now().Unix() {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}
	return claims, nil
}
