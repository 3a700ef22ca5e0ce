package auth

import "errors"

// ErrTokenInvalid is returned for any token that fails validation.
var ErrTokenInvalid = errors.New("auth: invalid token")
