package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
	"github.com/sirpyerre/coffee-catalog/internal/core/ports"
)

type signUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=72"`
	Nickname string `json:"nickname" validate:"max=100"`
}

// AuthService implements sign-up, login and bearer token parsing.
type AuthService struct {
	repo      ports.AuthRepository
	profiles  ports.ProfileRepository
	admin     *AdminPolicy
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, profiles ports.ProfileRepository, admin *AdminPolicy, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, profiles: profiles, admin: admin, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// SignUp registers an account and its profile. A blank nickname defaults to
// the local part of the email.
func (s *AuthService) SignUp(ctx context.Context, email, password, nickname string) (string, *domain.User, error) {
	in := signUpInput{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
		Nickname: cleanText(nickname),
	}
	if err := validateInput(in); err != nil {
		return "", nil, err
	}
	if in.Nickname == "" {
		in.Nickname, _, _ = strings.Cut(in.Email, "@")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	if err := s.profiles.Upsert(ctx, &domain.Profile{ID: user.ID, Nickname: in.Nickname, UpdatedAt: now}); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create profile on signup")
		return "", nil, domain.Upstream(domain.OpUpdateProfile, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	// An unknown email and a wrong password are indistinguishable to the caller.
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ParseToken validates an HS256 token and returns the identity in its claims.
func (s *AuthService) ParseToken(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: token missing subject", domain.ErrUnauthorized)
	}
	email, _ := claims["email"].(string)
	return &domain.Identity{ID: sub, Email: email}, nil
}

func (s *AuthService) IsAdmin(actor *domain.Identity) bool {
	return s.admin.IsAdmin(actor)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	if user == nil {
		return "", errors.New("generate token: nil user")
	}
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
