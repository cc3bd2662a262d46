package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/config"
	"github.com/top4/calldrivers/internal/models"
)

// SessionService issues and validates the signed session cookie. The
// session is stateless: validity is fully determined by the token's
// signature and expiry, there is no server-side session table.
type SessionService struct {
	secretKey  []byte
	expiry     time.Duration
	cookieName string
	logger     *logrus.Logger
}

func NewSessionService(cfg *config.JWTConfig, logger *logrus.Logger) (*SessionService, error) {
	secretKey := []byte(cfg.SecretKey)
	if len(secretKey) < 32 {
		return nil, fmt.Errorf("secret key must be at least 32 bytes")
	}

	return &SessionService{
		secretKey:  secretKey,
		expiry:     cfg.Expiry,
		cookieName: cfg.CookieName,
		logger:     logger,
	}, nil
}

type SessionClaims struct {
	Mobile   string `json:"mobile"`
	Name     string `json:"name,omitempty"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

func (s *SessionService) CreateToken(user models.AuthUser) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Mobile:   user.Mobile,
		Name:     user.Name,
		Verified: user.Verified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Mobile,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign session token")
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// AuthCookie wraps the token in an HTTP-only cookie scoped to the whole
// site, expiring together with the token.
func (s *SessionService) AuthCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.expiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *SessionService) ClearAuthCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// CurrentUser extracts and validates the session cookie. A missing,
// malformed or expired cookie yields nil, never an error.
func (s *SessionService) CurrentUser(r *http.Request) *models.AuthUser {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := s.ValidateToken(cookie.Value)
	if err != nil {
		s.logger.WithError(err).Debug("Session token validation failed")
		return nil
	}

	return &models.AuthUser{
		Mobile:   claims.Mobile,
		Name:     claims.Name,
		Verified: claims.Verified,
	}
}
