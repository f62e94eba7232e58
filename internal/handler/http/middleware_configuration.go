package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/metrics"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

type requestStateKey struct{}

// requestState travels with the request from withConfiguration to dispatch.
type requestState struct {
	conf    *app.Configuration
	started time.Time
}

// withConfiguration bootstraps a fresh Configuration for the request and
// stores it in the request context. A failed bootstrap ends the request with
// 500.
func (h *Handler) withConfiguration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		started := time.Now()

		user, err := h.userConfiguration(r)
		if err != nil {
			log.Warn().Err(err).Msg("request parameters could not be parsed")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conf, err := h.boot.Bootstrap(r.Context(), user)
		if err != nil {
			metrics.ObserveBootstrap(merger.ContextBrowser, started, err)
			log.Error().Err(err).Msg("bootstrap failed")
			http.Error(w, app.MsgBootstrapFailed, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), requestStateKey{}, &requestState{conf: conf, started: started})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userConfiguration layers the request parameters over the base tree. Path
// parameters win over form values, form values over query values, and all
// of them over parameters already present in the base tree.
func (h *Handler) userConfiguration(r *http.Request) (tree.Map, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	params := tree.Map{}
	for key, values := range r.Form {
		params[key] = formValue(values)
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "" || key == "*" {
				continue
			}
			params[key] = tree.Scalar(rctx.URLParams.Values[i])
		}
	}
	params["context"] = tree.Scalar(merger.ContextBrowser)

	user := h.source.Snapshot()
	base := user.Section(merger.SectionGeneral).Section("parameters")
	user.Set(tree.Object(tree.MergeMaps(base, params)), merger.SectionGeneral, "parameters")

	return user, nil
}

func formValue(values []string) tree.Value {
	if len(values) == 1 {
		return tree.Scalar(values[0])
	}
	return tree.Strings(values...)
}

// configurationFromRequest returns the Configuration stored by
// withConfiguration.
func configurationFromRequest(r *http.Request) (*requestState, error) {
	state, ok := r.Context().Value(requestStateKey{}).(*requestState)
	if !ok || state.conf == nil {
		return nil, errNoConfiguration
	}
	return state, nil
}
