package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/errm/rdsiam/iamauth"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	host    string
	port    int
	user    string
	region  string
	profile string
	verbose int

	logger logr.Logger
	// extra is appended to the provider options; tests use it to swap out
	// credentials and the signer.
	extra []iamauth.Option
}

func newRootCmd(extra ...iamauth.Option) *cobra.Command {
	o := &rootOptions{extra: extra}

	cmd := &cobra.Command{
		Use:          "rds-iam-token",
		Short:        "Generate AWS RDS IAM authentication tokens",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			stdr.SetVerbosity(o.verbose)
			o.logger = stdr.New(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.host, "host", "", "RDS endpoint hostname")
	flags.IntVar(&o.port, "port", 5432, "database port")
	flags.StringVar(&o.user, "user", "", "database user enabled for IAM authentication")
	flags.StringVar(&o.region, "region", "", "AWS region (default: parsed from --host)")
	flags.StringVar(&o.profile, "profile", "", "shared config profile used for credentials")
	flags.IntVarP(&o.verbose, "verbose", "v", 0, "log verbosity")

	cmd.AddCommand(
		newTokenCmd(o),
		newRegionCmd(o),
		newPingCmd(o),
	)
	return cmd
}

// providerOptions translates the flags into iamauth options.
func (o *rootOptions) providerOptions(ctx context.Context) ([]iamauth.Option, error) {
	opts := []iamauth.Option{iamauth.WithLogger(o.logger)}
	if o.region != "" {
		opts = append(opts, iamauth.WithRegion(o.region))
	}
	if o.profile != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(o.profile))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS profile %q: %w", o.profile, err)
		}
		opts = append(opts, iamauth.WithAWSConfig(awsCfg))
	}
	return append(opts, o.extra...), nil
}

func (o *rootOptions) requireIdentity() error {
	if o.host == "" {
		return fmt.Errorf("--host is required")
	}
	if o.user == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}
