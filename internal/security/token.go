package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"barriotips/api/internal/models"
)

var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Claims is the payload carried by an auth token: a snapshot of the user's
// identity, role and favourites at issuance time.
type Claims struct {
	UserID        string   `json:"uid"`
	Email         string   `json:"email"`
	FirstName     string   `json:"firstName"`
	Role          string   `json:"role"`
	FavouriteTips []string `json:"favouriteTips"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed auth tokens. Secret and
// ttl come from configuration at construction; there is no ambient state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *TokenService) Issue(user models.User, favourites []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		Role:          string(user.Role),
		FavouriteTips: favourites,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TokenFromHeader extracts the token from an Authorization header of the
// exact shape "Bearer <token>". Any other shape yields ErrTokenInvalid.
func TokenFromHeader(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrTokenInvalid
	}
	return parts[1], nil
}
