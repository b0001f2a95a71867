package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/epicevents/crm-management/internal"
	"github.com/epicevents/crm-management/internal/user"
)

// Claims is the signed claim set binding a user id to a point-in-time
// role snapshot. The role claim is informational only: authorization
// always re-checks the live role at call time.
type Claims struct {
	UserID int64   `json:"user_id"`
	Role   *string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and decodes HS256 session tokens. Generate is a
// pure function of its input, the clock and the process-wide secret.
type TokenGenerator struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func NewTokenGenerator(secret string, ttl time.Duration, logger *slog.Logger) *TokenGenerator {
	return &TokenGenerator{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Generate encodes {user_id, role, exp = now + ttl} for u.
func (g *TokenGenerator) Generate(u *user.User) (string, error) {
	var role *string
	if u.Role != nil {
		name := string(u.Role.Name)
		role = &name
	}

	claims := &Claims{
		UserID: u.ID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", internal.NewInternalError("signature du token impossible", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry. Expired and tampered tokens
// are distinguished here for logging; callers surface one generic
// message either way.
func (g *TokenGenerator) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			g.logger.Warn("session token expired")
			return nil, internal.ErrTokenExpired
		}
		g.logger.Warn("session token invalid", "error", err)
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
