package iamauth

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"
)

// providerConfig holds the collaborators a Provider is built with.
type providerConfig struct {
	region string
	creds  aws.CredentialsProvider
	signer Signer
	logger logr.Logger
}

// Option configures a [Provider] using the functional options pattern.
type Option func(*providerConfig) error

// WithCredentials replaces the default credential chain.
func WithCredentials(creds aws.CredentialsProvider) Option {
	return func(cfg *providerConfig) error {
		if creds == nil {
			return errors.New("iamauth: credentials provider must not be nil")
		}
		cfg.creds = creds
		return nil
	}
}

// WithAWSConfig takes credentials from an already loaded aws.Config.
// The region is still derived from the hostname; use [WithRegion] to
// override it.
func WithAWSConfig(awsCfg aws.Config) Option {
	return func(cfg *providerConfig) error {
		if awsCfg.Credentials == nil {
			return errors.New("iamauth: aws.Config must have a Credentials provider")
		}
		cfg.creds = awsCfg.Credentials
		return nil
	}
}

// WithRegion sets the region explicitly instead of parsing it from the
// hostname, for endpoints reached through custom DNS names.
func WithRegion(region string) Option {
	return func(cfg *providerConfig) error {
		if region == "" {
			return errors.New("iamauth: region must not be empty")
		}
		cfg.region = region
		return nil
	}
}

// WithSigner replaces the default [SDKSigner].
func WithSigner(signer Signer) Option {
	return func(cfg *providerConfig) error {
		if signer == nil {
			return errors.New("iamauth: signer must not be nil")
		}
		cfg.signer = signer
		return nil
	}
}

// WithLogger sets the logger. Tokens and credentials are never logged.
func WithLogger(logger logr.Logger) Option {
	return func(cfg *providerConfig) error {
		cfg.logger = logger
		return nil
	}
}
