package auth

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformedCredentials is returned when an Authorization header carries a
// Basic payload that cannot be decoded into a login/password pair.
var ErrMalformedCredentials = errors.New("malformed basic credentials")

// Credentials holds the login (username or email) and password extracted from
// an HTTP Basic Authorization header.
type Credentials struct {
	Login    string
	Password string
}

// ParseBasicCredentials extracts Basic credentials from a raw Authorization
// header value. A missing header or a non-Basic scheme is not an error: the
// request simply proceeds anonymously, so ok is false and err is nil. A Basic
// header that cannot be decoded, or whose payload has no colon, returns
// ErrMalformedCredentials.
func ParseBasicCredentials(header string) (Credentials, bool, error) {
	if header == "" {
		return Credentials{}, false, nil
	}

	scheme, payload, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return Credentials{}, false, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return Credentials{}, false, ErrMalformedCredentials
	}

	// Split on the first colon only; the password may itself contain colons.
	login, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return Credentials{}, false, ErrMalformedCredentials
	}

	return Credentials{Login: login, Password: password}, true, nil
}
