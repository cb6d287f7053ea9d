package services_test

import (
	"consolidator/src/config"
	"consolidator/src/services"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SecretReaderMock struct {
	GetSecretValueFunc func(ctx context.Context, secretId string) (string, error)
}

func (m *SecretReaderMock) GetSecretValue(ctx context.Context, secretId string) (string, error) {
	return m.GetSecretValueFunc(ctx, secretId)
}

func TestPasswordService(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Issuers: map[string]config.IssuerConfig{
		"kotak":      {PasswordEnv: "TEST_KOTAK_PASSWORD"},
		"yesbank":    {PasswordEnv: "TEST_YES_BANK_PASSWORD", SecretID: "statements/yesbank"},
		"iifl360one": {},
	}}
	t.Setenv("TEST_KOTAK_PASSWORD", "kotak-pw")
	t.Setenv("TEST_YES_BANK_PASSWORD", "env-pw")

	secrets := &SecretReaderMock{GetSecretValueFunc: func(_ context.Context, secretId string) (string, error) {
		if secretId == "statements/yesbank" {
			return "secret-pw", nil
		}
		return "", errors.New("unknown secret")
	}}

	t.Run("environment variable", func(t *testing.T) {
		password, err := services.NewPasswordService(cfg, secrets).Password(ctx, "Kotak")
		require.NoError(t, err)
		assert.Equal(t, "kotak-pw", password)
	})

	t.Run("secret store wins when configured", func(t *testing.T) {
		password, err := services.NewPasswordService(cfg, secrets).Password(ctx, "Yes Bank")
		require.NoError(t, err)
		assert.Equal(t, "secret-pw", password)
	})

	t.Run("environment without a secret store", func(t *testing.T) {
		password, err := services.NewPasswordService(cfg, nil).Password(ctx, "Yes Bank")
		require.NoError(t, err)
		assert.Equal(t, "env-pw", password)
	})

	t.Run("no password configured", func(t *testing.T) {
		for _, manager := range []string{"IIFL 360 One", "Motilal Oswal"} {
			password, err := services.NewPasswordService(cfg, secrets).Password(ctx, manager)
			require.NoError(t, err)
			assert.Empty(t, password)
		}
	})
}
