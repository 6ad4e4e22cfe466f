package iamauth

import (
	"regexp"
	"strings"
)

const (
	serviceSuffix = ".rds.amazonaws.com"
	regionGroup   = 3
)

// rdsHostPattern matches <identifier>.<role-prefix?><id>.<region>.rds.amazonaws.com,
// with the China partition's .cn suffix and a fully qualified trailing dot
// both optional. The role prefix distinguishes proxy and cluster endpoints
// from instance endpoints; its value has no bearing on the region.
var rdsHostPattern = regexp.MustCompile(
	`(?i)^(.+)\.(proxy-|cluster-|cluster-ro-|cluster-custom-)?[a-z0-9]+\.([a-z0-9-]+)\.rds\.amazonaws\.com(\.cn)?\.?$`,
)

// ParseRegion extracts the AWS region from an RDS endpoint hostname.
//
// Parameters:
//   - hostname: The database endpoint, e.g. mydb.cluster-abc123.us-east-1.rds.amazonaws.com
//
// Returns:
//   - string: The region segment exactly as it appears in the hostname
//   - error: *MalformedHostnameError if the hostname is not an RDS endpoint,
//     *RegionNotFoundError if it is but the region segment is missing
func ParseRegion(hostname string) (string, error) {
	m := rdsHostPattern.FindStringSubmatch(hostname)
	if m == nil {
		if !hasServiceSuffix(hostname) {
			return "", &MalformedHostnameError{Hostname: hostname}
		}
		return "", &RegionNotFoundError{Hostname: hostname}
	}
	if m[regionGroup] == "" {
		return "", &RegionNotFoundError{Hostname: hostname}
	}
	return m[regionGroup], nil
}

// hasServiceSuffix reports whether hostname ends in the RDS service domain.
func hasServiceSuffix(hostname string) bool {
	h := strings.TrimSuffix(strings.ToLower(hostname), ".")
	h = strings.TrimSuffix(h, ".cn")
	return strings.HasSuffix(h, serviceSuffix)
}
