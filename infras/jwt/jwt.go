package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pms/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header must carry a bearer token")
)

// TokenType tells access tokens apart from the other tokens the identity service issues.
type TokenType string

const (
	AccessToken TokenType = "access"
)

const bearerPrefix = "Bearer "

// Claims identify a staff member. Subject is the user id and ID the token id.
type Claims struct {
	Role string    `json:"role,omitempty"`
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) TokenID() string {
	return c.ID
}

// JWT validates access tokens issued by the identity service. This service never signs tokens.
type JWT interface {
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type Service struct {
	secret  []byte
	options []jwt.ParserOption
}

func New(cfg *config.Config) JWT {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Duration(cfg.JWT.LeewaySeconds) * time.Second),
	}

	if cfg.JWT.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.JWT.Issuer))
	}

	if cfg.JWT.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.JWT.Audience))
	}

	return &Service{
		secret:  []byte(cfg.JWT.AccessSecret),
		options: options,
	}
}

// ValidateToken checks signature, expiry, issuer and audience, then the token type.
// Tokens without a subject or role are rejected as they cannot be authorized.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, s.options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType || claims.Subject == "" || claims.Role == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
