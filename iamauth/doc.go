// Package iamauth provides AWS RDS IAM authentication tokens for use in place
// of a static database password.
//
//   - The AWS region is parsed from the RDS endpoint hostname when the Provider
//     is created, e.g. mydb.cluster-abc123.us-east-1.rds.amazonaws.com.
//   - Credentials come from the SDK's default chain unless WithCredentials or
//     WithAWSConfig is given.
//   - A Provider generates its token on the first GetCredential call and then
//     keeps returning it. RDS IAM tokens are valid for 15 minutes, so build a
//     new Provider for each connection attempt.
//
// Example usage:
//
//	p, err := iamauth.NewProvider("mydb.cluster-abc123.us-east-1.rds.amazonaws.com", 5432, "alice")
//	if err != nil {
//		log.Fatal(err)
//	}
//	password, err := p.GetCredential(ctx, iamauth.RequestCleartextPassword)
//
// The mysql and pgx packages wire a Provider into the corresponding drivers'
// BeforeConnect hooks.
package iamauth
