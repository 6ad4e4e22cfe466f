package iamauth

import (
	"net"
	"strconv"
)

// RequestType is the kind of authentication challenge the database server
// issued. Every request type is answered with the same token.
type RequestType uint8

const (
	RequestCleartextPassword RequestType = iota
	RequestMD5Password
	RequestGSS
	RequestSASL
)

func (t RequestType) String() string {
	switch t {
	case RequestCleartextPassword:
		return "cleartext-password"
	case RequestMD5Password:
		return "md5-password"
	case RequestGSS:
		return "gss"
	case RequestSASL:
		return "sasl"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// TokenRequest identifies the database principal a token is minted for.
type TokenRequest struct {
	Region   string
	Hostname string
	Port     int
	User     string
}

// Endpoint returns the host:port pair the token is scoped to.
func (r TokenRequest) Endpoint() string {
	return net.JoinHostPort(r.Hostname, strconv.Itoa(r.Port))
}
