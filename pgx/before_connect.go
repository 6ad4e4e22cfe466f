// Package pgx wires RDS IAM authentication into github.com/jackc/pgx/v5.
//
// Each new connection gets its own iamauth.Provider, built from the
// connection's host, port and user, and the generated token is used as the
// password. Use it with pgxpool:
//
//	pool, err := pgx.NewPool(ctx, "postgres://alice@mydb.cluster-abc123.us-east-1.rds.amazonaws.com:5432/app?sslmode=require")
//
// or install BeforeConnect on a pgxpool.Config yourself.
//
// A token is only valid for the host and port it was signed for, so
// multi-host connection strings are rejected. Fallbacks pgx derives for the
// same host and port, such as the non-TLS retry of sslmode=prefer, are fine.
package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/errm/rdsiam/iamauth"
)

const defaultPort = 5432

// BeforeConnect returns a pgxpool BeforeConnect hook that sets an RDS IAM
// authentication token as the connection password.
func BeforeConnect(opts ...iamauth.Option) func(ctx context.Context, cc *pgx.ConnConfig) error {
	return func(ctx context.Context, cc *pgx.ConnConfig) error {
		if err := checkFallbacks(cc); err != nil {
			return err
		}
		port := int(cc.Port)
		if port == 0 {
			port = defaultPort
		}
		p, err := iamauth.NewProvider(cc.Host, port, cc.User, opts...)
		if err != nil {
			return err
		}
		token, err := p.GetCredential(ctx, iamauth.RequestCleartextPassword)
		if err != nil {
			return err
		}
		cc.Password = token
		return nil
	}
}

// checkFallbacks rejects fallback hosts the token would not be valid for.
func checkFallbacks(cc *pgx.ConnConfig) error {
	for _, fb := range cc.Fallbacks {
		if fb.Host != cc.Host || fb.Port != cc.Port {
			return &iamauth.ValidationError{
				Field:   "host",
				Message: fmt.Sprintf("fallback %s:%d differs from %s:%d, an IAM token is valid for a single endpoint", fb.Host, fb.Port, cc.Host, cc.Port),
			}
		}
	}
	return nil
}

// NewPool parses connString and creates a pool whose connections
// authenticate with RDS IAM tokens. Connections are established lazily.
func NewPool(ctx context.Context, connString string, opts ...iamauth.Option) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	cfg.BeforeConnect = BeforeConnect(opts...)
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return pool, nil
}
