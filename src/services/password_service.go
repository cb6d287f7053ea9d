package services

import (
	"consolidator/src/config"
	"context"
	"os"
)

type PasswordServiceI interface {
	Password(ctx context.Context, manager string) (string, error)
}

// SecretReader is the part of the AWS secret manager passwords are read with.
type SecretReader interface {
	GetSecretValue(ctx context.Context, secretId string) (string, error)
}

// PasswordService resolves statement passwords. An issuer with a secret id
// reads it from the secret store when one is configured; otherwise the
// password comes from the issuer's environment variable.
type PasswordService struct {
	issuers map[string]config.IssuerConfig
	secrets SecretReader
}

// NewPasswordService accepts a nil secrets reader when no secret store is
// configured.
func NewPasswordService(cfg *config.Config, secrets SecretReader) *PasswordService {
	return &PasswordService{issuers: cfg.Issuers, secrets: secrets}
}

func (s *PasswordService) Password(ctx context.Context, manager string) (string, error) {
	issuer, ok := s.issuers[config.IssuerKey(manager)]
	if !ok {
		return "", nil
	}
	if issuer.SecretID != "" && s.secrets != nil {
		return s.secrets.GetSecretValue(ctx, issuer.SecretID)
	}
	if issuer.PasswordEnv == "" {
		return "", nil
	}
	return os.Getenv(issuer.PasswordEnv), nil
}
