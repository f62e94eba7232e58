// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the auth middleware when reading credentials from
// the request. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "<scheme> <value>" with the expected scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the bearer scheme is present but the
	// token itself is blank.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// errNoConfiguration means a handler behind withConfiguration found no
	// bootstrapped Configuration in the request context.
	errNoConfiguration = errors.New("no configuration in request context")
)
