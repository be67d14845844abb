package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"

	"storerating/config"
	"storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/router"
	"storerating/internal/delivery/api/router/handler"
	"storerating/internal/domain/entity"
	"storerating/internal/infra/auth"
	"storerating/internal/infra/persistence/memory"
	"storerating/internal/infra/pubsub"
	"storerating/internal/infra/qrcode"
	"storerating/internal/infra/ratelimit"
	"storerating/internal/infra/revocation"
	"storerating/internal/usecase/impl"
)

const (
	testPassword = "correct-horse"
	loginLimit   = 5
)

type testEnv struct {
	t     *testing.T
	e     *echo.Echo
	store *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Auth:   &config.AuthConfig{TokenTTL: time.Hour, Issuer: "storerating-test"},
		QRCode: &config.QRCodeConfig{BaseURL: "https://rate.example.com"},
		PubSub: &config.PubSubConfig{Provider: pubsub.ProviderNoop},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.HTTP.MaxRequestBodySize = "1M"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	revoker := revocation.NewMemoryRevoker()

	tokens, err := auth.NewJWTService(cfg, revoker)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter, err := ratelimit.NewFixedWindowLimiter(client, "test:login", loginLimit, time.Minute)
	require.NoError(t, err)

	publisher, err := pubsub.NewEventPublisher(pubsub.PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: logger,
	})
	require.NoError(t, err)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		Accounts:     store.AccountRepo(),
		Hasher:       hasher,
		TokenService: tokens,
		Revoker:      revoker,
		Limiter:      limiter,
		Logger:       logger,
	})
	adminUC := impl.NewAdminService(impl.AdminServiceParams{
		TxManager: store,
		Accounts:  store.AccountRepo(),
		Hasher:    hasher,
		Logger:    logger,
	})
	ratingUC := impl.NewRatingService(impl.RatingServiceParams{
		Stores:    store.StoreRepo(),
		Ratings:   store.RatingRepo(),
		Publisher: publisher,
		QRCode:    qrcode.NewQRCodeService(cfg),
		Logger:    logger,
	})

	e := newEcho(cfg, logger, router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUC),
		AdminHandler:   handler.NewAdminHandler(adminUC),
		RatingHandler:  handler.NewRatingHandler(ratingUC),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens, logger),
	})

	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)
	require.NoError(t, store.AccountRepo().Create(context.Background(), &entity.Account{
		Name:         "System Administrator Account",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Address:      "HQ",
		Role:         entity.RoleAdmin,
	}))

	return &testEnv{t: t, e: e, store: store}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	} `json:"error"`
}

func (env *testEnv) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	env.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	var out envelope
	if rec.Header().Get(echo.HeaderContentType) != "image/png" {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}

	return rec, out
}

func (env *testEnv) login(email, password string) string {
	env.t.Helper()

	rec, out := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(env.t, json.Unmarshal(out.Data, &data))

	return data.Token
}

func (env *testEnv) createAccount(adminToken, email string, role entity.Role) string {
	env.t.Helper()

	rec, out := env.do(http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"name":     "Generated Account Holder Name",
		"email":    email,
		"password": testPassword,
		"address":  "1 Main Street",
		"role":     string(role),
	})
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(env.t, json.Unmarshal(out.Data, &data))

	return data.ID
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProtectedRoutes_RejectMissingAndInvalidTokens(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/admin/users"},
		{http.MethodPost, "/api/admin/stores"},
		{http.MethodPost, "/api/user/ratings"},
		{http.MethodGet, "/api/user/stores/00000000-0000-0000-0000-000000000001/rating"},
		{http.MethodPut, "/api/user/password"},
		{http.MethodGet, "/api/owner/my-store/ratings"},
		{http.MethodGet, "/api/owner/my-store/qr"},
		{http.MethodPut, "/api/owner/password"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec, out := env.do(r.method, r.path, "", nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "MISSING_CREDENTIALS", out.Error.Code)

			rec, out = env.do(r.method, r.path, "not.a.jwt", nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "INVALID_TOKEN", out.Error.Code)
			assert.Empty(t, out.Error.Details)
		})
	}
}

func TestRoleMismatch_IsForbidden(t *testing.T) {
	env := newTestEnv(t)

	rec, out := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Regular Rating Person Name",
		"email":    "rater@example.com",
		"password": testPassword,
		"address":  "1 Main Street",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &registered))
	assert.Equal(t, "USER", registered.User.Role)

	rec, out = env.do(http.MethodPost, "/api/admin/users", registered.Token, map[string]string{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", out.Error.Code)

	rec, _ = env.do(http.MethodGet, "/api/owner/my-store/ratings", registered.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegister_ValidationAndConflict(t *testing.T) {
	env := newTestEnv(t)

	rec, out := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "short",
		"email":    "bad",
		"password": "x",
		"address":  "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", out.Error.Code)
	assert.Len(t, out.Error.Details, 4)

	rec, out = env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Duplicate Administrator Name",
		"email":    "ADMIN@example.com",
		"password": testPassword,
		"address":  "1 Main Street",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", out.Error.Code)
}

func TestLogin_UniformFailures(t *testing.T) {
	env := newTestEnv(t)

	wrongPass, _ := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope-nope"})
	unknown, _ := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "nope-nope"})

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)

	var a, b envelope
	require.NoError(t, json.Unmarshal(wrongPass.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &b))
	assert.Equal(t, a.Error, b.Error)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < loginLimit; i++ {
		rec, _ := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "wrong-pass"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec, out := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": testPassword})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", out.Error.Code)
}

func TestRatingFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login("admin@example.com", testPassword)

	ownerID := env.createAccount(adminToken, "owner@example.com", entity.RoleOwner)
	raterID := env.createAccount(adminToken, "rater@example.com", entity.RoleUser)

	rec, out := env.do(http.MethodPost, "/api/admin/stores", adminToken, map[string]string{
		"name": "Corner Bakery and Coffee House", "email": "shop@example.com", "address": "2 Market Street", "ownerId": raterID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_OWNER", out.Error.Code)

	rec, out = env.do(http.MethodPost, "/api/admin/stores", adminToken, map[string]string{
		"name": "Corner Bakery and Coffee House", "email": "shop@example.com", "address": "2 Market Street", "ownerId": ownerID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var shop struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &shop))

	raterToken := env.login("rater@example.com", testPassword)
	ratingPath := "/api/user/stores/" + shop.ID + "/rating"

	rec, out = env.do(http.MethodGet, ratingPath, raterToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"storeId":"`+shop.ID+`","average":0,"count":0}`, string(out.Data))

	rec, out = env.do(http.MethodPost, "/api/user/ratings", raterToken, map[string]any{"storeId": shop.ID, "score": 7})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", out.Error.Code)

	rec, _ = env.do(http.MethodPost, "/api/user/ratings", raterToken, map[string]any{"storeId": shop.ID, "score": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = env.do(http.MethodPost, "/api/user/ratings", raterToken, map[string]any{"storeId": shop.ID, "score": "4"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, out = env.do(http.MethodGet, ratingPath, raterToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"storeId":"`+shop.ID+`","average":4,"count":1}`, string(out.Data))

	rec, _ = env.do(http.MethodGet, "/api/user/stores/"+ownerID+"/rating", raterToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ownerToken := env.login("owner@example.com", testPassword)
	rec, out = env.do(http.MethodGet, "/api/owner/my-store/ratings", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		AvgRating float64 `json:"avgRating"`
		Ratings   []struct {
			Score     int    `json:"score"`
			UserEmail string `json:"userEmail"`
		} `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &summary))
	assert.InDelta(t, 4.0, summary.AvgRating, 1e-9)
	require.Len(t, summary.Ratings, 1)
	assert.Equal(t, "rater@example.com", summary.Ratings[0].UserEmail)

	rec, _ = env.do(http.MethodGet, "/api/owner/my-store/qr", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
}

func TestLogoutAndPasswordChange_RevokeTokens(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login("admin@example.com", testPassword)
	env.createAccount(adminToken, "rater@example.com", entity.RoleUser)

	token := env.login("rater@example.com", testPassword)
	rec, _ := env.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out := env.do(http.MethodPut, "/api/user/password", token, map[string]string{"newPassword": "brand-new-pass"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", out.Error.Code)

	token = env.login("rater@example.com", testPassword)
	rec, _ = env.do(http.MethodPut, "/api/user/password", token, map[string]string{"newPassword": "brand-new-pass"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(http.MethodPut, "/api/user/password", token, map[string]string{"newPassword": "another-pass1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "rater@example.com", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.login("rater@example.com", "brand-new-pass")
}
