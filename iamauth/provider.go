package iamauth

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"
)

// state tracks whether a Provider has minted its token yet. The only
// transition is stateUninitialized -> stateReady.
type state uint8

const (
	stateUninitialized state = iota
	stateReady
)

// ConnectionIdentity is the database principal a Provider mints tokens for.
// It never changes after construction.
type ConnectionIdentity struct {
	Hostname string
	Port     int
	User     string
	Region   string
}

// Provider supplies an IAM authentication token in place of a database
// password. The token is generated on the first call to GetCredential and
// returned unchanged by every later call; a Provider never renews it.
//
// A Provider is safe for concurrent use. Concurrent first calls result in a
// single signing call.
type Provider struct {
	identity ConnectionIdentity
	creds    aws.CredentialsProvider
	signer   Signer
	logger   logr.Logger

	mu    sync.RWMutex
	state state
	token string
}

// NewProvider creates a Provider for the given connection parameters. The
// region is parsed from the hostname once, here, unless [WithRegion] is
// given.
//
// Parameters:
//   - hostname: The RDS endpoint
//   - port: The database port, 1-65535
//   - user: The database user configured for IAM authentication
//   - opts: Options overriding credentials, region, signer and logger
//
// Returns:
//   - *Provider: A provider in its uninitialized state
//   - error: *MalformedHostnameError or *RegionNotFoundError for an unusable
//     hostname, *ValidationError for an unusable port or user, or an option error
func NewProvider(hostname string, port int, user string, opts ...Option) (*Provider, error) {
	cfg := providerConfig{
		signer: SDKSigner{},
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if hostname == "" {
		return nil, &MalformedHostnameError{Hostname: hostname}
	}
	if port < 1 || port > 65535 {
		return nil, &ValidationError{Field: "port", Message: "must be between 1 and 65535"}
	}
	if user == "" {
		return nil, &ValidationError{Field: "user", Message: "must not be empty"}
	}

	region := cfg.region
	if region == "" {
		var err error
		if region, err = ParseRegion(hostname); err != nil {
			return nil, err
		}
	}
	if cfg.creds == nil {
		cfg.creds = DefaultCredentials(region)
	}

	return &Provider{
		identity: ConnectionIdentity{
			Hostname: hostname,
			Port:     port,
			User:     user,
			Region:   region,
		},
		creds:  cfg.creds,
		signer: cfg.signer,
		logger: cfg.logger.WithValues(
			"host", hostname,
			"port", port,
			"user", user,
			"region", region,
		),
	}, nil
}

// Identity returns the connection identity the provider was built with.
func (p *Provider) Identity() ConnectionIdentity {
	return p.identity
}

// Ready reports whether a token has been generated and cached.
func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state == stateReady
}

// GetCredential returns the authentication token to send as the password.
// The request type is logged but does not affect the token.
//
// The first successful call resolves credentials and signs a token; later
// calls return the cached token without any external call. A failed call
// leaves the cache empty so the next call tries again.
//
// Parameters:
//   - ctx: Context for cancellation and timeout of credential resolution and signing
//   - rt: The authentication challenge issued by the server
//
// Returns:
//   - string: The authentication token
//   - error: *TokenGenerationError wrapping the credential or signing failure
func (p *Provider) GetCredential(ctx context.Context, rt RequestType) (string, error) {
	p.mu.RLock()
	if p.state == stateReady {
		defer p.mu.RUnlock()
		return p.token, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another goroutine may have generated the token while we waited.
	if p.state == stateReady {
		return p.token, nil
	}

	token, err := p.generate(ctx, rt)
	if err != nil {
		return "", err
	}
	p.token = token
	p.state = stateReady
	return token, nil
}

// generate resolves credentials and signs a new token.
// It must be called while holding the write lock.
func (p *Provider) generate(ctx context.Context, rt RequestType) (string, error) {
	log := p.logger.WithValues("requestType", rt.String())

	creds, err := p.creds.Retrieve(ctx)
	if err != nil {
		log.Error(err, "failed to resolve AWS credentials")
		return "", &TokenGenerationError{Op: "credential resolution", Cause: err}
	}

	token, err := p.signer.Sign(ctx, p.request(), creds)
	if err == nil && token == "" {
		err = errors.New("signer returned an empty token")
	}
	if err != nil {
		log.Error(err, "failed to sign authentication token")
		return "", &TokenGenerationError{Op: "signing", Cause: err}
	}

	if expires, err := TokenExpiry(token); err == nil {
		log.V(1).Info("generated authentication token", "expires", expires)
	} else {
		log.V(1).Info("generated authentication token")
	}
	return token, nil
}

func (p *Provider) request() TokenRequest {
	return TokenRequest{
		Region:   p.identity.Region,
		Hostname: p.identity.Hostname,
		Port:     p.identity.Port,
		User:     p.identity.User,
	}
}
