// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

const (
	// MsgBootstrapFailed is written to the response when any bootstrap step
	// fails before the application could run.
	MsgBootstrapFailed = "application bootstrap failed"

	// MsgInternalServerError is returned when the application itself fails
	// or panics while producing the response.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned when an enabled auth callback rejects the
	// request.
	MsgUnauthorized = "unauthorized"
)
