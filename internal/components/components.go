// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package components holds the built-in components listed in the default
// required_objects catalog and registers their factories.
package components

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-app-kernel/internal/crypto"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/store"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Register adds every built-in class to catalog. The database and the
// encryption component are process-wide singletons: the first resolution
// decides their parameters.
func Register(catalog *registry.Catalog, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	catalog.RegisterSingleton(merger.ClassDatabase, func(params tree.Map) (any, error) {
		settings, err := store.SettingsFromParams(params)
		if err != nil {
			return nil, err
		}
		return store.NewDatabase(settings, log), nil
	})

	catalog.RegisterSingleton(merger.ClassEncryption, func(params tree.Map) (any, error) {
		return crypto.NewEncryption(params["key"].StringOr(""), []byte(params["salt"].StringOr("")))
	})

	catalog.Register(merger.ClassFilesystem, func(params tree.Map) (any, error) {
		return NewFilesystem(params["root"].StringOr(""), params["upload_path"].StringOr(""))
	})

	catalog.Register(merger.ClassErrorHandler, func(params tree.Map) (any, error) {
		return NewErrorHandler(params["log_path"].StringOr(""), params["development_mode"].BoolOr(false)), nil
	})

	catalog.Register(merger.ClassTemplate, func(params tree.Map) (any, error) {
		return NewTemplate(params["template_path"].StringOr(""), params["extension"].StringOr(".tmpl")), nil
	})

	catalog.Register(merger.ClassToken, func(params tree.Map) (any, error) {
		return NewToken(params["issuer"].StringOr(""), params["ttl"].StringOr("1h"))
	})

	catalog.Register(merger.ClassHTTPClient, func(params tree.Map) (any, error) {
		timeout, err := duration(params["timeout"].StringOr("30s"))
		if err != nil {
			return nil, fmt.Errorf("httpclient.timeout: %w", err)
		}
		return NewHTTPClient(params["base_url"].StringOr(""), timeout), nil
	})
}

func duration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
