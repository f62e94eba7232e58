package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/loader"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Conventional method names looked up on the application component when a
// slot has no usable callback of its own.
var authFallbacks = map[string]string{
	merger.SectionAPIAuth:     "ApiAuth",
	merger.SectionHTTPAuth:    "HttpAuth",
	merger.SectionSessionAuth: "SessionAuth",
}

const (
	fallbackErrorHandler     = "CustomErrorHandler"
	fallbackShutdownFunction = "CustomShutdownFunction"
)

// applyRuntimeSettings loads the configured time zone and sets the logger
// level. Nothing outside this Configuration is touched.
func (c *Configuration) applyRuntimeSettings(context.Context) error {
	general := c.tree.Section(merger.SectionGeneral)

	zone := general["timezone"].StringOr("UTC")
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return fmt.Errorf("%w: general.timezone %q: %v", merger.ErrConfiguration, zone, err)
	}
	c.location = loc

	level := general["log_level"].StringOr("info")
	if general["development_mode"].BoolOr(false) {
		level = "debug"
	}
	log, err := c.logger.WithLevel(level)
	if err != nil {
		return fmt.Errorf("%w: general.log_level: %v", merger.ErrConfiguration, err)
	}
	c.logger = log
	c.registry.SetLogger(log)

	return nil
}

func (c *Configuration) resolveCallbacks(context.Context) error {
	eh := c.tree.Section(merger.SectionErrorHandler)
	if eh["enable"].BoolOr(false) {
		slots := []struct {
			hook, key, fallback string
		}{
			{HookError, "error_callback", fallbackErrorHandler},
			{HookShutdown, "shutdown_callback", fallbackShutdownFunction},
		}
		for _, slot := range slots {
			d, err := callback.ParseDescriptor(eh[slot.key])
			if err != nil {
				d = callback.Descriptor{}
			}
			fn, err := c.callbacks.ResolveWithFallback(d, slot.fallback)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", merger.SectionErrorHandler, slot.key, err)
			}
			c.hooks[slot.hook] = fn
		}
	}

	for _, section := range merger.AuthSections {
		s := c.tree.Section(section)
		if !s["enable"].BoolOr(false) {
			continue
		}

		d, err := callback.ParseDescriptor(s["callback"])
		if err != nil {
			return fmt.Errorf("%s.callback: %w", section, err)
		}

		var fn callback.Func
		if d.IsZero() {
			fn, err = c.callbacks.ResolveWithFallback(d, authFallbacks[section])
		} else {
			fn, err = c.callbacks.Resolve(d)
		}
		if err != nil {
			return fmt.Errorf("%s.callback: %w", section, err)
		}
		c.hooks[section] = fn
	}

	return nil
}

// loadRequiredFiles reads testing.required_files in test mode and
// general.required_files otherwise. Relative entries are taken from
// path.application_path. Each file is a configuration overlay merged into
// the tree in list order. Overlays may only add sections of their own;
// kernel sections were already consumed by the earlier steps.
func (c *Configuration) loadRequiredFiles(context.Context) error {
	list := c.tree.Section(merger.SectionGeneral)["required_files"]
	if testSection := c.tree.Section(merger.SectionTesting); testSection["enable"].BoolOr(false) {
		list = testSection["required_files"]
	}

	base := c.tree.Section(merger.SectionPath)["application_path"].StringOr("")
	for _, name := range list.StringList() {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrMissingIncludeFile, path)
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}

		overlay, err := loader.Load(path)
		if err != nil {
			return err
		}
		for _, section := range merger.KernelSections {
			if _, ok := overlay[section]; ok {
				return fmt.Errorf("%w: %s: required files cannot set section %q", merger.ErrConfiguration, path, section)
			}
		}
		c.tree = tree.MergeMaps(c.tree, overlay)
		c.logger.Debug().Str("file", path).Msg("required file loaded")
	}

	return nil
}

func (c *Configuration) loadTranslationText(context.Context) error {
	lang := c.tree.Section(merger.SectionGeneral)["language"].StringOr("")
	folder := c.tree.Section(merger.SectionPath)["language_folder"].StringOr("")
	if lang == "" || folder == "" {
		return nil
	}

	path, err := findLanguageFile(folder, lang)
	if err != nil {
		return err
	}

	printer, count, err := newPrinter(lang, path)
	if err != nil {
		return err
	}
	c.printer = printer
	c.logger.Debug().Str("language", lang).Str("file", path).Int("messages", count).Msg("translations loaded")

	return nil
}
