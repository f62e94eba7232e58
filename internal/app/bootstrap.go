package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/metrics"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Bootstrap step names, used in error messages, logs and metrics.
const (
	StepMergeConfiguration   = "merge_configuration"
	StepApplyRuntimeSettings = "apply_runtime_settings"
	StepResolveCallbacks     = "resolve_auth_and_error_callbacks"
	StepLoadRequiredFiles    = "load_required_files"
	StepLoadTranslationText  = "load_translation_text"
	StepDispatch             = "dispatch"
)

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Bootstrapper turns a user configuration into a ready Configuration and
// runs the application. It holds only shared, read-only collaborators and
// may be used from many goroutines; every call builds a fresh Configuration.
type Bootstrapper struct {
	merger  *merger.Merger
	catalog *registry.Catalog
	logger  *logger.Logger
}

// Option customises a [Bootstrapper].
type Option func(*Bootstrapper)

// WithMerger replaces the default merger.
func WithMerger(m *merger.Merger) Option {
	return func(b *Bootstrapper) {
		if m != nil {
			b.merger = m
		}
	}
}

// WithLogger sets the base logger. Each Configuration derives its own level
// from it.
func WithLogger(l *logger.Logger) Option {
	return func(b *Bootstrapper) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBootstrapper creates a Bootstrapper resolving components from catalog.
func NewBootstrapper(catalog *registry.Catalog, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		catalog: catalog,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.merger == nil {
		b.merger = merger.New()
	}
	return b
}

// Bootstrap runs every step up to, but not including, Dispatch. The first
// failing step aborts the rest.
func (b *Bootstrapper) Bootstrap(ctx context.Context, user tree.Map) (*Configuration, error) {
	conf := NewConfiguration(tree.Map{}, b.catalog, b.logger)

	steps := []step{
		{StepMergeConfiguration, func(context.Context) error {
			merged, err := b.merger.Merge(user)
			if err != nil {
				return err
			}
			conf.tree = merged
			return nil
		}},
		{StepApplyRuntimeSettings, conf.applyRuntimeSettings},
		{StepResolveCallbacks, conf.resolveCallbacks},
		{StepLoadRequiredFiles, conf.loadRequiredFiles},
		{StepLoadTranslationText, conf.loadTranslationText},
	}

	for _, s := range steps {
		if err := b.runStep(ctx, conf, s); err != nil {
			return nil, err
		}
	}

	return conf, nil
}

// Run bootstraps and dispatches to the application, returning its response.
func (b *Bootstrapper) Run(ctx context.Context, user tree.Map) (string, error) {
	started := time.Now()
	executionContext := executionContextOf(user)

	conf, err := b.Bootstrap(ctx, user)
	if err != nil {
		metrics.ObserveBootstrap(executionContext, started, err)
		return "", err
	}

	response, err := b.Dispatch(ctx, conf)
	metrics.ObserveBootstrap(executionContext, started, err)

	return response, err
}

// Dispatch runs the application of an already bootstrapped conf. Hosts that
// act on conf between the two phases, such as the HTTP boundary checking
// auth, call Bootstrap and Dispatch themselves.
func (b *Bootstrapper) Dispatch(ctx context.Context, conf *Configuration) (string, error) {
	var response string
	err := b.runStep(ctx, conf, step{StepDispatch, func(ctx context.Context) error {
		var runErr error
		response, runErr = conf.RunApplication(ctx)
		return runErr
	}})
	return response, err
}

func (b *Bootstrapper) runStep(ctx context.Context, conf *Configuration, s step) error {
	err := s.run(ctx)
	metrics.BootstrapSteps.WithLabelValues(s.name, metrics.Outcome(err)).Inc()
	if err != nil {
		conf.logger.Error().Err(err).Str("step", s.name).Msg("bootstrap step failed")
		return fmt.Errorf("%s: %w", s.name, err)
	}
	conf.logger.Debug().Str("step", s.name).Msg("bootstrap step done")
	return nil
}

func executionContextOf(user tree.Map) string {
	v, ok := user.Get(merger.SectionGeneral, "parameters", "context")
	if !ok {
		return merger.ContextBrowser
	}
	return v.StringOr(merger.ContextBrowser)
}
