package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// AuthService implements registration, login and account management.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates an account. The email pre-check is a fast path; the
// store's unique index decides concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := checkEmailFree(ctx, s.users, input.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       input.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, storeErr("create user", err, domain.ErrDuplicateEmail)
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("reason", "unknown_account").Msg("login rejected")
			return nil, domain.ErrInvalidAccount
		}
		return nil, storeErr("find user by email", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn().Int64("user_id", user.ID).Str("reason", "bad_password").Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(domain.ClaimsFor(user))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return &pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. Claims are rebuilt
// from the stored account so renamed users get current values.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidAccount
		}
		return nil, storeErr("find user", err)
	}

	pair, err := s.tokens.IssuePair(domain.ClaimsFor(user))
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (s *AuthService) List(ctx context.Context, filter ports.ListFilter) (*ports.Page[*domain.User], error) {
	q, page, perPage := normalizeFilter(filter)
	users, total, err := s.users.List(ctx, q)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return newPage(users, total, page, perPage), nil
}

func (s *AuthService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err, domain.ErrUserNotFound)
	}
	return user, nil
}

func (s *AuthService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Status: input.Status,
	}
	if input.Email != nil && *input.Email != existing.Email {
		if err := checkEmailFree(ctx, s.users, *input.Email, id); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	if patch.Empty() {
		return existing, nil
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, storeErr("update user", err, domain.ErrUserNotFound, domain.ErrDuplicateEmail)
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *AuthService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storeErr("delete user", err, domain.ErrUserNotFound)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// checkEmailFree fails with ErrDuplicateEmail when email belongs to an
// account other than selfID.
func checkEmailFree(ctx context.Context, users ports.UserRepository, email string, selfID int64) error {
	other, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return storeErr("find user by email", err)
	case other.ID != selfID:
		return domain.ErrDuplicateEmail
	}
	return nil
}
