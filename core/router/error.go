package router

import "errors"

// Registration errors. Routes are registered during a setup phase, so
// malformed registrations panic with one of these rather than returning.
var (
	ErrInvalidPattern   = errors.New("routing pattern must begin with '/'")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilHandler       = errors.New("nil route handler")
	ErrWildcardPosition = errors.New("wildcard '*' must be the last segment in a route")
	ErrDuplicateParam   = errors.New("routing pattern contains duplicate param key")
	ErrEmptyParamName   = errors.New("routing pattern contains ':' with no param name")
)
