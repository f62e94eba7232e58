// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is installed as the router's MethodNotAllowed handler.
// A path that exists only for other methods answers 404, so callers probing
// with PUT or DELETE learn nothing about which application modules exist.
//
// The path is matched against the router's tree, parameterised patterns
// such as "/{module}/{option}" included. When the method does match after
// all, the request goes back through the router.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
