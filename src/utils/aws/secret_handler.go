package aws_handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

var ErrBinarySecret = errors.New("secret has no string value")

// SecretManager reads statement passwords stored as plain string secrets.
type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValueWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", secretId, err)
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s: %w", secretId, ErrBinarySecret)
	}

	return *result.SecretString, nil
}
