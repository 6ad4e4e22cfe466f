package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/errm/rdsiam/iamauth"
)

func newTokenCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print an authentication token to use as the database password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.requireIdentity(); err != nil {
				return err
			}
			opts, err := o.providerOptions(cmd.Context())
			if err != nil {
				return err
			}
			p, err := iamauth.NewProvider(o.host, o.port, o.user, opts...)
			if err != nil {
				return err
			}
			token, err := p.GetCredential(cmd.Context(), iamauth.RequestCleartextPassword)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}
