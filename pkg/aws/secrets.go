package aws

import (
	"context"
	"encoding/json"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the slice of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient reads startup secrets (DB credentials, JWT signing key).
// Each secret is fetched once during config load, so no local cache.
type SecretsClient struct {
	client SecretsAPI
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return &SecretsClient{client: secretsmanager.NewFromConfig(cfg)}
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: &name})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", name)
	}
	return *out.SecretString, nil
}

// GetSecretJSON decodes a JSON-valued secret, like the database credentials
// bundle, into dest.
func (s *SecretsClient) GetSecretJSON(ctx context.Context, name string, dest any) error {
	raw, err := s.GetSecret(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to decode secret %s: %w", name, err)
	}
	return nil
}
