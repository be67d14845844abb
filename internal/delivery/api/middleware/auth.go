package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

const bearerScheme = "bearer"

// AuthMiddleware is the authorization gate: Authenticate resolves the token
// into an identity, RequireRole checks it against a route group's role set.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects a request without a bearer token with MISSING_CREDENTIALS
// and one whose token does not verify with INVALID_TOKEN, both 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
		if authHeader == "" {
			return domainerrors.ErrMissingCredentials
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" {
			return domainerrors.ErrTokenInvalid
		}

		identity, err := m.tokenSvc.Verify(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, domainerrors.ErrTokenInvalid) {
				deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
					Debug("Token rejected", slog.Any("error", err))

				return domainerrors.ErrTokenInvalid
			}

			return errors.Wrap(err, "failed to verify token")
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

// RequireRole must run after Authenticate. Roles outside the set get 403.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	roles := entity.Roles(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := deliverycontext.GetIdentity(c)
			if !ok {
				return domainerrors.ErrMissingCredentials
			}
			if !roles.Contains(identity.Role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// CurrentIdentity returns the identity bound by Authenticate. Handlers behind
// the gate can rely on it being present.
func CurrentIdentity(c echo.Context) (*entity.Identity, error) {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return nil, domainerrors.ErrMissingCredentials
	}

	return identity, nil
}
