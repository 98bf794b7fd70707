package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"notesaas/internal/caching"
	"notesaas/internal/models"
	"notesaas/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRateLimited        = errors.New("too many login attempts")
)

const (
	refreshTokenKeyPrefix = "notesaas:refresh_token:"
	revokedTokenKeyPrefix = "notesaas:revoked_token:"
	loginRateLimit        = 10
	loginRateWindow       = time.Minute
)

// TokenClaims represents JWT claims for an access token. Only the subject is
// trusted downstream; the middleware re-resolves the profile on every request.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// AuthService issues, verifies and revokes bearer credentials.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	RevokeToken(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// SignIn verifies email/password and issues a token pair. Any lookup or
// password failure collapses into ErrInvalidCredentials so callers cannot
// distinguish "no such user" from "wrong password".
func (s *authService) SignIn(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error) {
	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+email, loginRateLimit, loginRateWindow)
	if err == nil && limited {
		return nil, nil, ErrRateLimited
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

func (s *authService) generateTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID:   user.ID.String(),
		TenantID: user.TenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "notesaas-auth",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken := generateSecureToken()
	refreshKey := refreshTokenKeyPrefix + hashToken(refreshToken)
	if err := s.cacheSvc.SetString(ctx, refreshKey, user.ID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		TenantID:     user.TenantID.String(),
		TokenID:      tokenID,
		IssuedAt:     now,
	}, nil
}

// ValidateToken parses and verifies an access token. Expired, malformed,
// badly signed and revoked tokens all fail with ErrInvalidToken.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if _, err := s.cacheSvc.GetString(ctx, revokedTokenKeyPrefix+claims.ID); err == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshTokens rotates a refresh token into a fresh token pair.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshKey := refreshTokenKeyPrefix + hashToken(refreshToken)
	userIDStr, err := s.cacheSvc.GetString(ctx, refreshKey)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Single use: drop the old refresh token before issuing a new pair.
	if err := s.cacheSvc.Delete(ctx, refreshKey); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.generateTokens(ctx, user)
}

// RevokeToken denylists an access token for its remaining lifetime.
func (s *authService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cacheSvc.SetString(ctx, revokedTokenKeyPrefix+claims.ID, "revoked", ttl)
}

func generateSecureToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
