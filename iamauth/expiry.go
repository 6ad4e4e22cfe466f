package iamauth

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const amzDateFormat = "20060102T150405Z"

// TokenExpiry parses the expiration time from an RDS authentication token.
// The token is a presigned URL without its scheme; its query string carries
// the X-Amz-Date and X-Amz-Expires parameters.
//
// Parameters:
//   - token: The authentication token
//
// Returns:
//   - time.Time: X-Amz-Date + X-Amz-Expires
//   - error: If the token has no query string or is missing either parameter
func TokenExpiry(token string) (time.Time, error) {
	var t time.Time
	_, rawQuery, found := strings.Cut(token, "?")
	if !found {
		return t, errors.New("auth token has no query string")
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return t, err
	}
	date := q.Get("X-Amz-Date")
	if date == "" {
		return t, errors.New("X-Amz-Date not found in auth token")
	}
	if t, err = time.Parse(amzDateFormat, date); err != nil {
		return t, err
	}
	exp := q.Get("X-Amz-Expires")
	if exp == "" {
		return t, errors.New("X-Amz-Expires not found in auth token")
	}
	seconds, err := strconv.Atoi(exp)
	if err != nil {
		return t, err
	}
	return t.Add(time.Duration(seconds) * time.Second), nil
}
