package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storerating/config"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// accessClaims is the payload of an access token.
type accessClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	// IssuedAtMs is iat in milliseconds, compared against account cutoffs.
	IssuedAtMs int64 `json:"iat_ms"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoker service.TokenRevoker
	now     func() time.Time
}

// NewJWTService is the constructor for jwtService.
// revoker may be nil, in which case tokens are only checked for signature and expiry.
func NewJWTService(cfg *config.Config, revoker service.TokenRevoker) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultTokenTTL
	issuer := ""
	if cfg.Auth != nil {
		if cfg.Auth.TokenTTL > 0 {
			ttl = cfg.Auth.TokenTTL
		}
		issuer = cfg.Auth.Issuer
	}

	return &jwtService{
		secret:  []byte(cfg.SecretKey.Access),
		issuer:  issuer,
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}, nil
}

func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

// Issue signs an HS256 token for the account with a fresh jti.
func (s *jwtService) Issue(account *entity.Account) (string, *entity.Identity, error) {
	now := s.now().Truncate(time.Millisecond)
	identity := &entity.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := accessClaims{
		AccountID:  account.ID.String(),
		Email:      account.Email,
		Role:       account.Role.String(),
		IssuedAtMs: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        identity.TokenID,
			Subject:   account.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(identity.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}

	return signed, identity, nil
}

// Verify checks signature, expiry and revocation. Every token problem maps
// to the same ErrTokenInvalid; only a revocation store failure differs.
func (s *jwtService) Verify(ctx context.Context, tokenString string) (*entity.Identity, error) {
	identity, err := s.parse(tokenString)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
	}

	if s.revoker == nil {
		return identity, nil
	}

	revoked, err := s.revoker.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		return nil, errors.Wrap(err, "check token revocation")
	}
	if revoked {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token revoked")
	}

	cutoff, ok, err := s.revoker.RevokedBefore(ctx, identity.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "check account revocation")
	}
	// A token issued in the same millisecond as the cutoff is rejected too.
	if ok && !identity.IssuedAt.After(cutoff.Truncate(time.Millisecond)) {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token issued before account revocation")
	}

	return identity, nil
}

func (s *jwtService) parse(tokenString string) (*entity.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "parse account id")
	}
	role := entity.Role(claims.Role)
	if !role.IsValid() {
		return nil, errors.Errorf("unknown role %q", claims.Role)
	}
	if claims.ID == "" || claims.IssuedAt == nil || claims.IssuedAtMs <= 0 {
		return nil, errors.New("token missing jti or iat")
	}

	return &entity.Identity{
		AccountID: accountID,
		Email:     claims.Email,
		Role:      role,
		TokenID:   claims.ID,
		IssuedAt:  time.UnixMilli(claims.IssuedAtMs),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
