// Command rds-iam-token prints RDS IAM authentication tokens and checks that
// a database accepts them.
//
//	rds-iam-token token --host mydb.cluster-abc123.us-east-1.rds.amazonaws.com --user alice
//	rds-iam-token ping --driver mysql --host ... --port 3306 --user admin --database app
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
