package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/errm/rdsiam/iamauth"
)

func newRegionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "region",
		Short: "Print the AWS region parsed from --host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.host == "" {
				return fmt.Errorf("--host is required")
			}
			region, err := iamauth.ParseRegion(o.host)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), region)
			return err
		},
	}
}
