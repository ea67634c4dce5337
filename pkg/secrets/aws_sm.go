package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// GetSecretValueAPI is the subset of the Secrets Manager client used here.
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManagerProvider implements Provider using AWS Secrets Manager.
type AWSSecretsManagerProvider struct {
	client GetSecretValueAPI
}

// NewAWSProvider creates a new AWS Secrets Manager provider for the given region.
// Credentials come from the default chain (env, shared config, IMDS, ...).
func NewAWSProvider(ctx context.Context, region string) (Provider, error) {
	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewAWSProviderFromClient(secretsmanager.NewFromConfig(cfg)), nil
}

// NewAWSProviderFromClient wraps an existing client.
func NewAWSProviderFromClient(client GetSecretValueAPI) *AWSSecretsManagerProvider {
	return &AWSSecretsManagerProvider{client: client}
}

// GetSecretString fetches the current version of a secret from AWS Secrets Manager.
// Secrets should be stored as JSON objects (e.g. {"DB_HOST": "localhost", "DB_PORT": 5432}).
// A secret without a SecretString yields EmptyPayload.
func (p *AWSSecretsManagerProvider) GetSecretString(ctx context.Context, id string) (string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret [%s]: %w", id, err)
	}
	if out == nil || out.SecretString == nil {
		return EmptyPayload, nil
	}
	return *out.SecretString, nil
}

func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}
