package aws_handler_test

import (
	aws_handler "consolidator/src/utils/aws"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SecretsManagerMock struct {
	secretsmanageriface.SecretsManagerAPI
	GetSecretValueFunc func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *SecretsManagerMock) GetSecretValueWithContext(_ aws.Context, input *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(input)
}

func TestSecretManagerGetSecretValue(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the string value", func(t *testing.T) {
		manager := aws_handler.NewSecretManager(&SecretsManagerMock{
			GetSecretValueFunc: func(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				assert.Equal(t, "statements/kotak", aws.StringValue(input.SecretId))
				return &secretsmanager.GetSecretValueOutput{SecretString: aws.String("s3cret")}, nil
			},
		})

		value, err := manager.GetSecretValue(ctx, "statements/kotak")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", value)
	})

	t.Run("binary secrets are rejected", func(t *testing.T) {
		manager := aws_handler.NewSecretManager(&SecretsManagerMock{
			GetSecretValueFunc: func(*secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return &secretsmanager.GetSecretValueOutput{SecretBinary: []byte{1}}, nil
			},
		})

		_, err := manager.GetSecretValue(ctx, "statements/kotak")
		assert.ErrorIs(t, err, aws_handler.ErrBinarySecret)
	})

	t.Run("service errors are wrapped", func(t *testing.T) {
		denied := errors.New("access denied")
		manager := aws_handler.NewSecretManager(&SecretsManagerMock{
			GetSecretValueFunc: func(*secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
				return nil, denied
			},
		})

		_, err := manager.GetSecretValue(ctx, "statements/kotak")
		assert.ErrorIs(t, err, denied)
	})
}
