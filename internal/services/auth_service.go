package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/repository"
	pkgerrors "github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/errors"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/jwt"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", pkgerrors.ErrUnauthorized)
	ErrJWTSecretNotSet    = errors.New("JWT secret not configured")
)

// AuthService handles dashboard registration, login and session tokens
type AuthService struct {
	userRepo     repository.UserRepositoryInterface
	config       *config.Config
	tokenManager *jwt.TokenManager
	hashCost     int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepositoryInterface, cfg *config.Config) *AuthService {
	var tokenManager *jwt.TokenManager
	if cfg.Session.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(
			cfg.Session.JWTSecret,
			cfg.Session.JWTIssuer,
			cfg.Session.SessionTTLHours,
		)
	}

	return &AuthService{
		userRepo:     userRepo,
		config:       cfg,
		tokenManager: tokenManager,
		hashCost:     bcrypt.DefaultCost,
	}
}

// Register creates an account and opens a session for it
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSession, string, error) {
	if s.tokenManager == nil {
		return nil, "", ErrJWTSecretNotSet
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, pkgerrors.ErrConflict) {
			logger.Error("Failed to create user", zap.Error(err))
		}
		return nil, "", err
	}

	logger.Info("User registered", zap.String("user_id", user.ID))
	return s.openSession(user)
}

// Login checks a password and opens a session
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.UserSession, string, error) {
	if s.tokenManager == nil {
		return nil, "", ErrJWTSecretNotSet
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown email")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login attempt with wrong password", zap.String("user_id", user.ID))
		return nil, "", ErrInvalidCredentials
	}

	logger.Info("User logged in", zap.String("user_id", user.ID))
	return s.openSession(user)
}

func (s *AuthService) openSession(user *models.User) (*models.UserSession, string, error) {
	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		logger.Error("Failed to generate session token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &models.UserSession{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Duration(s.tokenManager.TTLSeconds()) * time.Second).Unix(),
	}
	return session, token, nil
}

// GetSessionTTL returns the session TTL in seconds
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.SessionTTLHours * 3600
}

// GetCookieDomain returns the cookie domain for sessions
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether cookies should be secure
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager returns the JWT token manager used by the session middleware
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}
