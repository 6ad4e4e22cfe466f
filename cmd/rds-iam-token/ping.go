package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"github.com/errm/rdsiam/iamauth"
	rdsmysql "github.com/errm/rdsiam/mysql"
	rdspgx "github.com/errm/rdsiam/pgx"
)

const (
	driverPostgres = "postgres"
	driverMySQL    = "mysql"
)

func newPingCmd(o *rootOptions) *cobra.Command {
	var driver, database string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Connect with an IAM token and ping the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.requireIdentity(); err != nil {
				return err
			}
			if driver != driverPostgres && driver != driverMySQL {
				return fmt.Errorf("unsupported driver %q, want %s or %s", driver, driverPostgres, driverMySQL)
			}

			opts, err := o.providerOptions(cmd.Context())
			if err != nil {
				return err
			}
			if driver == driverMySQL {
				err = pingMySQL(cmd.Context(), o, database, opts)
			} else {
				err = pingPostgres(cmd.Context(), o, database, opts)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", net.JoinHostPort(o.host, strconv.Itoa(o.port)))
			return err
		},
	}

	cmd.Flags().StringVar(&driver, "driver", driverPostgres, "database driver: postgres or mysql")
	cmd.Flags().StringVar(&database, "database", "", "database name")
	return cmd
}

func pingPostgres(ctx context.Context, o *rootOptions, database string, opts []iamauth.Option) error {
	connString := (&url.URL{
		Scheme:   "postgres",
		User:     url.User(o.user),
		Host:     net.JoinHostPort(o.host, strconv.Itoa(o.port)),
		Path:     "/" + database,
		RawQuery: "sslmode=require",
	}).String()

	pool, err := rdspgx.NewPool(ctx, connString, opts...)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pool.Ping(ctx)
}

func pingMySQL(ctx context.Context, o *rootOptions, database string, opts []iamauth.Option) error {
	cfg := mysql.NewConfig()
	cfg.User = o.user
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.host, strconv.Itoa(o.port))
	cfg.DBName = database
	cfg.TLSConfig = "true"
	if err := cfg.Apply(mysql.BeforeConnect(rdsmysql.TokenProvider(opts...))); err != nil {
		return err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return err
	}
	db := sql.OpenDB(connector)
	defer db.Close()
	return db.PingContext(ctx)
}
