// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
	"storerating/internal/usecase"
	"storerating/internal/validation"
)

// dummyPassword is hashed once and checked against when the email is unknown,
// so both login failure paths pay for one hash comparison.
const dummyPassword = "storerating-login-timing-guard"

// authService implements the AuthUsecase interface.
type authService struct {
	accounts     repository.AccountRepository
	hasher       service.PasswordHasher
	creator      accountCreator
	tokenService service.TokenService
	revoker      service.TokenRevoker
	limiter      service.RateLimiter
	logger       *slog.Logger
	now          func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Accounts     repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Revoker      service.TokenRevoker
	Limiter      service.RateLimiter
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accounts:     params.Accounts,
		hasher:       params.Hasher,
		creator:      accountCreator{accounts: params.Accounts, hasher: params.Hasher},
		tokenService: params.TokenService,
		revoker:      params.Revoker,
		limiter:      params.Limiter,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	account := &entity.Account{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Role:    entity.RoleUser,
	}
	if err := srv.creator.create(ctx, srv.log(ctx), account, input.Password); err != nil {
		return nil, err
	}

	return srv.issue(account)
}

func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	if err := srv.checkLoginRate(ctx, input.ClientIP, email); err != nil {
		return nil, err
	}

	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	account, err := srv.accounts.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.hasher.Check(input.Password, srv.timingGuardHash())
		srv.log(ctx).Info("Login rejected")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Login rejected")

		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issue(account)
}

// checkLoginRate fails closed: a limiter error rejects the attempt.
func (srv *authService) checkLoginRate(ctx context.Context, clientIP, email string) error {
	if srv.limiter == nil {
		return nil
	}

	allowed, err := srv.limiter.Allow(ctx, loginRateKey(clientIP, email))
	if err != nil {
		srv.log(ctx).Error("Login rate limiter unavailable", slog.Any("error", err))

		return domainerrors.ErrTooManyRequests
	}
	if !allowed {
		srv.log(ctx).Warn("Login rate limit exceeded", slog.String("clientIP", clientIP))

		return domainerrors.ErrTooManyRequests
	}

	return nil
}

func loginRateKey(clientIP, email string) string {
	return strings.Join([]string{clientIP, email}, "|")
}

func (srv *authService) timingGuardHash() string {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Error("Failed to build timing guard hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}

func (srv *authService) issue(account *entity.Account) (*usecase.AuthOutput, error) {
	token, identity, err := srv.tokenService.Issue(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.AuthOutput{
		Token:     token,
		ExpiresAt: identity.ExpiresAt,
		Account:   account.Summary(),
	}, nil
}

func (srv *authService) Logout(ctx context.Context, identity *entity.Identity) error {
	ttl := identity.ExpiresAt.Sub(srv.now())
	if ttl <= 0 {
		return nil
	}

	if err := srv.revoker.Revoke(ctx, identity.TokenID, ttl); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	srv.log(ctx).Info("Token revoked", slog.String("accountID", identity.AccountID.String()))

	return nil
}

func (srv *authService) ChangePassword(ctx context.Context, identity *entity.Identity, input *usecase.ChangePasswordInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	// Revoke before storing the hash: if the update then fails, the account
	// only has to sign in again with its old password.
	now := srv.now()
	// Every token alive now expires within one TTL, so the cutoff can too.
	if err := srv.revoker.RevokeAccount(ctx, identity.AccountID, now, srv.tokenService.TTL()); err != nil {
		return errors.Wrap(err, "failed to revoke tokens before password change")
	}
	if ttl := identity.ExpiresAt.Sub(now); ttl > 0 {
		if err := srv.revoker.Revoke(ctx, identity.TokenID, ttl); err != nil {
			return errors.Wrap(err, "failed to revoke current token")
		}
	}

	if err := srv.accounts.UpdatePassword(ctx, identity.AccountID, hash, now); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.String("accountID", identity.AccountID.String()))

	return nil
}
