package iamauth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenExpiry(t *testing.T) {
	cases := []struct {
		name          string
		input         string
		expected      time.Time
		expectedError string
	}{
		{
			name:     "token with valid time and expiry",
			input:    "prod-instance.c9akciq32lce.us-east-1.rds.amazonaws.com:3306?X-Amz-Date=20250704T100138Z&X-Amz-Expires=900",
			expected: time.Date(2025, time.July, 04, 10, 16, 38, 0, time.UTC),
		},
		{
			name:     "hostname starting with a digit",
			input:    "1db.c9akciq32lce.us-east-1.rds.amazonaws.com:5432?X-Amz-Date=20250704T100138Z&X-Amz-Expires=60",
			expected: time.Date(2025, time.July, 04, 10, 2, 38, 0, time.UTC),
		},
		{
			name:          "token missing expiry",
			input:         "prod-instance.c9akciq32lce.us-east-1.rds.amazonaws.com:3306?X-Amz-Date=20250704T100138Z",
			expectedError: "X-Amz-Expires not found in auth token",
		},
		{
			name:          "token missing time",
			input:         "prod-instance.c9akciq32lce.us-east-1.rds.amazonaws.com:3306?X-Amz-Expires=900",
			expectedError: "X-Amz-Date not found in auth token",
		},
		{
			name:          "token with invalid time",
			input:         "prod-instance.c9akciq32lce.us-east-1.rds.amazonaws.com:3306?X-Amz-Date=Tuesday&X-Amz-Expires=900",
			expectedError: "cannot parse \"Tuesday\"",
		},
		{
			name:          "token with invalid expiry",
			input:         "prod-instance.c9akciq32lce.us-east-1.rds.amazonaws.com:3306?X-Amz-Date=20250704T100138Z&X-Amz-Expires=NineHundred",
			expectedError: "\"NineHundred\": invalid syntax",
		},
		{
			name:          "token without query string",
			input:         "tok-123",
			expectedError: "no query string",
		},
		{
			name:          "token has invalid query string",
			input:         "123.com?a=1;b=2",
			expectedError: "invalid semicolon separator in query",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := TokenExpiry(tc.input)
			if len(tc.expectedError) > 0 {
				if err == nil || !strings.Contains(err.Error(), tc.expectedError) {
					t.Errorf("expected error %v, got %v", tc.expectedError, err)
				}
			} else {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if !actual.Equal(tc.expected) {
					t.Errorf("expected %v, got %v", tc.expected, actual)
				}
			}
		})
	}
}
