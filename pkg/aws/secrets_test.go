package aws

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSecretsAPI struct {
	values map[string]string
	err    error
}

func (s *stubSecretsAPI) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.values[*in.SecretId]
	if !ok {
		return &secretsmanager.GetSecretValueOutput{}, nil
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: sdkaws.String(v)}, nil
}

func TestGetSecretReturnsStringValue(t *testing.T) {
	client := &SecretsClient{client: &stubSecretsAPI{values: map[string]string{
		"storefront/JWT_SECRET": "signing-key",
	}}}

	got, err := client.GetSecret(context.Background(), "storefront/JWT_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "signing-key", got)
}

func TestGetSecretNoStringValue(t *testing.T) {
	client := &SecretsClient{client: &stubSecretsAPI{values: map[string]string{}}}

	_, err := client.GetSecret(context.Background(), "storefront/JWT_SECRET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no string value")
}

func TestGetSecretJSONDecodesCredentialsBundle(t *testing.T) {
	client := &SecretsClient{client: &stubSecretsAPI{values: map[string]string{
		"storefront/DB_CREDENTIALS": `{"POSTGRES_USER":"store","POSTGRES_PASSWORD":"pw","POSTGRES_DB":"storefront"}`,
	}}}

	var creds map[string]string
	require.NoError(t, client.GetSecretJSON(context.Background(), "storefront/DB_CREDENTIALS", &creds))
	assert.Equal(t, "store", creds["POSTGRES_USER"])
	assert.Equal(t, "pw", creds["POSTGRES_PASSWORD"])
	assert.Equal(t, "storefront", creds["POSTGRES_DB"])
}

func TestGetSecretJSONRejectsMalformedPayload(t *testing.T) {
	client := &SecretsClient{client: &stubSecretsAPI{values: map[string]string{
		"storefront/DB_CREDENTIALS": "not-json",
	}}}

	var creds map[string]string
	err := client.GetSecretJSON(context.Background(), "storefront/DB_CREDENTIALS", &creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestGetSecretWrapsAPIError(t *testing.T) {
	client := &SecretsClient{client: &stubSecretsAPI{err: errors.New("access denied")}}

	_, err := client.GetSecret(context.Background(), "storefront/JWT_SECRET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
