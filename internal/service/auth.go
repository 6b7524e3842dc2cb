package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"peoplehub.app/api/common/id"
	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/store"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, auth.Token, error)
	Login(ctx context.Context, email, password string) (*model.User, auth.Token, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	// IssueToken mints a token for an existing user without a password check.
	IssueToken(ctx context.Context, email string) (*model.User, auth.Token, error)
}

type authService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	tokens    auth.TokenIssuer
}

func NewAuthService(userStore store.UserStore, hasher auth.PasswordHasher, tokens auth.TokenIssuer) AuthService {
	return &authService{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, auth.Token, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, auth.Token{}, ErrBlankName
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, auth.Token{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, auth.Token{}, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, auth.Token{}, ErrPasswordTooLong
		}
		return nil, auth.Token{}, err
	}

	user := &model.User{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, auth.Token{}, ErrEmailTaken
		}
		return nil, auth.Token{}, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, auth.Token{}, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, auth.Token, error) {
	user, err := s.userStore.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.Token{}, ErrInvalidCredentials
		}
		return nil, auth.Token{}, fmt.Errorf("loading user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			slog.InfoContext(ctx, "login failed", "user_id", user.ID)
			return nil, auth.Token{}, ErrInvalidCredentials
		}
		return nil, auth.Token{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, auth.Token{}, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		slog.DebugContext(ctx, "token rejected", "error", err)
		return nil, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("loading user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return err
	}

	if err := s.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	slog.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

func (s *authService) IssueToken(ctx context.Context, email string) (*model.User, auth.Token, error) {
	user, err := s.userStore.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.Token{}, ErrUserNotFound
		}
		return nil, auth.Token{}, fmt.Errorf("loading user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, auth.Token{}, err
	}
	return user, token, nil
}
