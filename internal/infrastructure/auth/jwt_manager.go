package auth

import (
	"errors"
	"fmt"
	"time"

	"proassignment/internal/config"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("missing auth.jwt_secret")
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues HS256 tokens carrying the user id as sub and the role.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var _ interfaces.ITokenManager = (*JWTManager)(nil)

func NewJWTManager(cfg config.AuthConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

func (m *JWTManager) Issue(u entities.User) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *JWTManager) Verify(token string) (entities.Viewer, error) {
	var c claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return entities.Viewer{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := entities.Role(c.Role)
	if c.Subject == "" || !role.Valid() {
		return entities.Viewer{}, ErrInvalidToken
	}
	return entities.Viewer{UserID: c.Subject, Role: role}, nil
}
