package auth

import (
	"storerating/config"
	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

// NewPasswordHasher selects the hashing algorithm named in the auth config.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	authCfg := cfg.Auth
	if authCfg == nil {
		authCfg = &config.AuthConfig{}
	}

	switch authCfg.HashAlgorithm {
	case "", config.HashAlgorithmBcrypt:
		return NewBcryptHasher(authCfg.BcryptCost), nil
	case config.HashAlgorithmArgon2id:
		return NewArgon2Hasher(Argon2Params{
			Memory:      authCfg.Argon2.Memory,
			Iterations:  authCfg.Argon2.Iterations,
			Parallelism: authCfg.Argon2.Parallelism,
			SaltLength:  authCfg.Argon2.SaltLength,
			KeyLength:   authCfg.Argon2.KeyLength,
		}), nil
	default:
		return nil, errors.Errorf("unsupported hash algorithm: %s", authCfg.HashAlgorithm)
	}
}
