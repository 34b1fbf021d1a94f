package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskboard-app/taskboard/internal/config"
	"github.com/taskboard-app/taskboard/internal/domain"
	"github.com/taskboard-app/taskboard/internal/repository"
	"github.com/taskboard-app/taskboard/internal/token"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameExists      = errors.New("username already exists")
	ErrEmailExists         = errors.New("email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// SessionService issues, verifies and rotates token pairs. Per subject the
// lifecycle is anonymous -> authenticated (valid access+refresh pair) ->
// invalidated; only the latest refresh token issued for a subject is valid.
type SessionService struct {
	userRepo     repository.UserRepository
	codec        *token.Codec
	refreshStore *token.RefreshStore
	cfg          *config.Config
}

func NewSessionService(userRepo repository.UserRepository, codec *token.Codec, refreshStore *token.RefreshStore, cfg *config.Config) *SessionService {
	return &SessionService{
		userRepo:     userRepo,
		codec:        codec,
		refreshStore: refreshStore,
		cfg:          cfg,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	// Username also accepts an email address; it is resolved to the
	// matching username first.
	Username string
	Password string
}

type TokenPair struct {
	Access  string
	Refresh string
}

type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

func (s *SessionService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.NewValidationError("username and password are required")
	}
	if input.Email == "" {
		return nil, domain.NewValidationError("email address is required")
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, ErrUsernameExists
	}
	if existing, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

func (s *SessionService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.NewValidationError("username and password are required")
	}

	var (
		user *domain.User
		err  error
	)
	if strings.Contains(input.Username, "@") {
		user, err = s.userRepo.GetByEmail(ctx, input.Username)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, input.Username)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// One active session per user: drop whatever refresh token was live
	// before issuing the new pair.
	if err := s.InvalidateAllForUser(ctx, user.ID); err != nil {
		return nil, err
	}

	tokens, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

// IssueTokenPair creates a fresh access+refresh pair and records the
// refresh token as the single valid one for the subject. The store write
// overwrites any previous entry, so all earlier refresh tokens die here.
func (s *SessionService) IssueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.codec.Encode(user.ID, user.Username, token.TypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Encode(user.ID, "", token.TypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.refreshStore.Put(ctx, user.ID, refresh, s.cfg.RefreshTokenTTL); err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Verify reports whether the token decodes cleanly and carries the
// expected type claim. Fails closed on any decode error.
func (s *SessionService) Verify(tokenString string, expected token.Type) bool {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return false
	}
	return claims.Type == expected
}

// ResolveSubject returns the subject user id asserted by the token.
func (s *SessionService) ResolveSubject(tokenString string) (uuid.UUID, error) {
	return s.codec.DecodeSubject(tokenString)
}

// Authenticate resolves an access token to a live user. Used by the
// request-level auth gate.
func (s *SessionService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != token.TypeAccess {
		return nil, token.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// InvalidateAllForUser removes the stored refresh token, so no previously
// issued refresh token can be exchanged again.
func (s *SessionService) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.refreshStore.Invalidate(ctx, userID)
}

// Refresh exchanges a refresh token for a brand-new pair. The presented
// token must both decode and equal the stored one for its subject;
// anything older than the latest issued pair is rejected.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != token.TypeRefresh {
		return nil, token.ErrInvalidToken
	}

	stored, err := s.refreshStore.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, token.ErrNoStoredToken) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tokens, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

func (s *SessionService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
