package model

import "errors"

// Token verification failures. The HTTP layer collapses all of them into one
// "unauthorized access" response.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)
