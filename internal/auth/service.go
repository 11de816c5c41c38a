package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sango-pay/sango_pay/internal/config"
	"github.com/sango-pay/sango_pay/internal/identity"
)

// ErrInvalidToken occurs when a token fails signature or claim validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated identity: the user id in the subject and
// the user's ledger account id alongside it.
type Claims struct {
	AccountID string `json:"acct"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 access tokens.
type Service struct {
	cfg config.Config
}

// NewService builds an auth service from runtime configuration.
func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// Issue signs an access token for the user. Returns the compact token and
// its lifetime in seconds.
func (s *Service) Issue(user identity.User) (string, int64, error) {
	now := time.Now()
	claims := Claims{
		AccountID: user.AccountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Verify checks the token signature and expiry and returns its claims.
func (s *Service) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.AccountID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
