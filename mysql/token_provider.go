// Package mysql provides a token provider for AWS RDS IAM database authentication
// with github.com/go-sql-driver/mysql.
//
//   - RDS IAM authentication tokens are valid for 15 minutes.
//   - The AWS region is parsed from the RDS endpoint in Config.Addr.
//   - A fresh token is generated for each new connection, so pooled
//     connections never present an expired token.
//
// Example usage:
//
//	import (
//		"database/sql"
//		"github.com/go-sql-driver/mysql"
//		"github.com/errm/rdsiam/iamauth"
//		rdsauth "github.com/errm/rdsiam/mysql"
//	)
//
//	func main() {
//		// Configure MySQL connection
//		mysqlConfig := mysql.NewConfig()
//		mysqlConfig.User = "dbuser"
//		mysqlConfig.Addr = "mydb.cluster-abc123.us-east-1.rds.amazonaws.com:3306"
//		mysqlConfig.Net = "tcp"
//		mysqlConfig.TLSConfig = "true"
//
//		// Register the token provider
//		mysqlConfig.Apply(mysql.BeforeConnect(rdsauth.TokenProvider()))
//
//		connector, _ := mysql.NewConnector(mysqlConfig)
//
//		// Open database connection
//		db := sql.OpenDB(connector)
//		defer db.Close()
//		err := db.Ping()
//		if err != nil {
//			log.Fatal(err)
//		}
//	}
package mysql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/errm/rdsiam/iamauth"
)

const defaultPort = 3306

// TokenProvider creates a BeforeConnect hook that sets an RDS IAM
// authentication token as the connection password.
//
// Parameters:
//   - opts: iamauth options applied to the provider built for every connection
//
// Returns:
//   - A function that can be used as a BeforeConnect Option for the MySQL driver
func TokenProvider(opts ...iamauth.Option) func(ctx context.Context, c *mysql.Config) error {
	return func(ctx context.Context, c *mysql.Config) error {
		host, port, err := splitAddr(c.Addr)
		if err != nil {
			return err
		}
		p, err := iamauth.NewProvider(host, port, c.User, opts...)
		if err != nil {
			return err
		}
		token, err := p.GetCredential(ctx, iamauth.RequestCleartextPassword)
		if err != nil {
			return err
		}
		c.Passwd = token
		// RDS verifies the token through the mysql_clear_password plugin.
		c.AllowCleartextPasswords = true
		return nil
	}
}

// splitAddr splits a host[:port] address, defaulting the port to 3306.
func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		var addrErr *net.AddrError
		if errors.As(err, &addrErr) && addrErr.Err == "missing port in address" {
			return addr, defaultPort, nil
		}
		return "", 0, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in address %q: %w", addr, err)
	}
	return host, port, nil
}
