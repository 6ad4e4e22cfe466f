package iamauth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// defaultCredentials resolves credentials through the SDK's default chain:
// environment, shared config and credentials files, web identity, ECS and
// EC2 instance metadata. The chain is loaded on first use.
type defaultCredentials struct {
	region   string
	mu       sync.Mutex
	provider aws.CredentialsProvider
}

// DefaultCredentials returns an aws.CredentialsProvider backed by the SDK's
// default resolution chain for the given region.
func DefaultCredentials(region string) aws.CredentialsProvider {
	return &defaultCredentials{region: region}
}

func (d *defaultCredentials) Retrieve(ctx context.Context) (aws.Credentials, error) {
	p, err := d.load(ctx)
	if err != nil {
		return aws.Credentials{}, err
	}
	return p.Retrieve(ctx)
}

func (d *defaultCredentials) load(ctx context.Context) (aws.CredentialsProvider, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.provider != nil {
		return d.provider, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(d.region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Credentials == nil {
		return nil, errors.New("no AWS credential provider configured")
	}
	d.provider = cfg.Credentials
	return d.provider, nil
}
