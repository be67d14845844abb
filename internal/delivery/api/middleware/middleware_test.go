package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storerating/internal/delivery/api/response"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/errors"
	mockSvc "storerating/internal/mocks/service"
)

func newTestEcho(t *testing.T) (*echo.Echo, *mockSvc.MockTokenService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := mockSvc.NewMockTokenService(t)
	gate := NewAuthMiddleware(tokens, logger)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError

	ok := func(c echo.Context) error {
		identity, err := CurrentIdentity(c)
		if err != nil {
			return err
		}

		return c.String(http.StatusOK, identity.AccountID.String())
	}
	e.GET("/owner", ok, gate.Authenticate, gate.RequireRole(entity.RoleOwner))
	e.GET("/fail", func(c echo.Context) error {
		switch c.QueryParam("kind") {
		case "app":
			return errors.WithStack(domainerrors.NewValidationError(domainerrors.FieldError{Field: "name", Message: "required"}))
		case "internal":
			return domainerrors.ErrInternalError.WithDetails("pq: relation missing")
		case "http":
			return echo.NewHTTPError(http.StatusMethodNotAllowed, "nope")
		default:
			return errors.New("disk on fire")
		}
	})

	return e, tokens
}

func serve(e *echo.Echo, path, authorization string) (*httptest.ResponseRecorder, response.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body response.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func TestAuthenticate_HeaderShapes(t *testing.T) {
	e, _ := newTestEcho(t)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{name: "missing", header: "", code: "MISSING_CREDENTIALS"},
		{name: "wrong scheme", header: "Basic abc", code: "INVALID_TOKEN"},
		{name: "no token", header: "Bearer", code: "INVALID_TOKEN"},
		{name: "blank token", header: "Bearer    ", code: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(e, "/owner", tt.header)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestAuthenticate_VerifyOutcomes(t *testing.T) {
	ownerID := uuid.New()

	t.Run("valid owner", func(t *testing.T) {
		e, tokens := newTestEcho(t)
		tokens.EXPECT().Verify(mock.Anything, "good").Return(&entity.Identity{AccountID: ownerID, Role: entity.RoleOwner}, nil)

		rec, _ := serve(e, "/owner", "bearer good")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ownerID.String(), rec.Body.String())
	})

	t.Run("wrong role", func(t *testing.T) {
		e, tokens := newTestEcho(t)
		tokens.EXPECT().Verify(mock.Anything, "user").Return(&entity.Identity{AccountID: ownerID, Role: entity.RoleUser}, nil)

		rec, body := serve(e, "/owner", "Bearer user")
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", body.Error.Code)
	})

	t.Run("rejected token hides reason", func(t *testing.T) {
		e, tokens := newTestEcho(t)
		tokens.EXPECT().Verify(mock.Anything, "old").Return(nil, domainerrors.ErrTokenInvalid.WrapMessage("token revoked"))

		rec, body := serve(e, "/owner", "Bearer old")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_TOKEN", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "revoked")
	})

	t.Run("revocation store down", func(t *testing.T) {
		e, tokens := newTestEcho(t)
		tokens.EXPECT().Verify(mock.Anything, "any").Return(nil, errors.New("redis: connection refused"))

		rec, body := serve(e, "/owner", "Bearer any")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, rec.Body.String(), "redis")
	})
}

func TestHandleHTTPError(t *testing.T) {
	e, _ := newTestEcho(t)

	t.Run("app error keeps details", func(t *testing.T) {
		rec, body := serve(e, "/fail?kind=app", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.NotNil(t, body.Error.Details)
	})

	t.Run("server app error drops details", func(t *testing.T) {
		rec, body := serve(e, "/fail?kind=internal", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Nil(t, body.Error.Details)
		assert.NotContains(t, rec.Body.String(), "relation")
	})

	t.Run("echo error", func(t *testing.T) {
		rec, body := serve(e, "/fail?kind=http", "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "HTTP_ERROR", body.Error.Code)
		assert.Equal(t, "nope", body.Error.Message)
	})

	t.Run("unknown error is opaque", func(t *testing.T) {
		rec, body := serve(e, "/fail", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, rec.Body.String(), "disk")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, body := serve(e, "/missing", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "HTTP_ERROR", body.Error.Code)
	})
}
