package secrets

import "context"

// EmptyPayload is returned for secrets that carry no SecretString (e.g. binary secrets).
const EmptyPayload = "{}"

// Provider defines a generic secrets manager interface.
// Concrete implementations (AWS, GCP, etc.) can satisfy this.
type Provider interface {
	// GetSecretString retrieves a secret by name/ARN and returns its raw JSON payload.
	GetSecretString(ctx context.Context, id string) (string, error)
}

// Factory builds a Provider bound to a region.
type Factory func(ctx context.Context, region string) (Provider, error)
