package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clinicdesk/booking-api/internal/auth"
	"github.com/clinicdesk/booking-api/internal/models"
	"github.com/clinicdesk/booking-api/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRefreshToken    = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password, fullName string) (*models.User, *TokenPair, error)
	Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context, requester models.Requester) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	refreshRepo repository.RefreshTokenRepository
	secret      string
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, refreshRepo repository.RefreshTokenRepository, secret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		secret:      secret,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, *TokenPair, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.refreshRepo.FindByHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		return nil, ErrBadRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, rt.UserID)
	if err != nil {
		return nil, ErrBadRefreshToken
	}

	access, err := auth.MakeToken(user.ID, user.Roles, s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.refreshRepo.Rotate(ctx, rt.ID, user.ID, newHash, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: newRaw}, nil
}

func (s *authService) Me(ctx context.Context, requester models.Requester) (*models.User, error) {
	if !requester.Authenticated {
		return nil, ErrNotAllowed
	}
	user, err := s.userRepo.FindByID(ctx, requester.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := auth.MakeToken(user.ID, user.Roles, s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.refreshRepo.Create(ctx, user.ID, hash, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: raw}, nil
}
