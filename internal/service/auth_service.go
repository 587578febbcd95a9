package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/config"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/repository"
	"github.com/tres-colores-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users     repository.UserRepository
	secretKey []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// Claims are the JWT claims carried by issued tokens
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, cfg *config.AuthConfig, log zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		secretKey: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
		log:       log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new account with the default user role and returns a token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validation.ValidateRegister(req); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("User registered")
	return s.issueToken(user)
}

// Login verifies credentials and returns a token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.Info().Str("email", user.Email).Msg("User logged in")
	return s.issueToken(user)
}

// ParseToken validates a bearer token and returns the viewer it identifies
func (s *authService) ParseToken(tokenString string) (models.Viewer, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return models.Viewer{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.Viewer{}, fmt.Errorf("invalid token claims")
	}

	return models.Viewer{
		ID:   claims.Email,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}

func (s *authService) issueToken(user *models.User) (*models.AuthResponse, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "tres-colores-api",
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
