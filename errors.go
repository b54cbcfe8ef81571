package auth

import (
	"errors"
	"strings"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrUnableToFindSession is the error when our request has no session attached
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// ErrUnableToParseData parse error
var ErrUnableToParseData = errors.New("unable to parse data")

// ErrTokenExpired the presented token is past its expiration claim
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed the presented token failed signature or structure checks
var ErrTokenMalformed = errors.New("token is malformed")

// ErrNoEmptyString we refuse to hash empty passwords
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword generic credential failure. Returned for both
// unknown identifiers and wrong passwords so callers cannot enumerate users.
var ErrMismatchedHashAndPassword = errors.New("email or password incorrect")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
