package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
)

// withHTTPAuth gates every application request on http_auth. The callback
// receives the basic-auth user name and password, both empty when the
// request carries none.
func (h *Handler) withHTTPAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := configurationFromRequest(r)
		if err != nil {
			internalError(w, r, err)
			return
		}

		username, password, _ := r.BasicAuth()
		if !h.authorize(w, r, state.conf, merger.SectionHTTPAuth, username, password) {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withAPIAuth gates /api routes on api_auth. When the section is enabled a
// bearer token is required and handed to the callback.
func (h *Handler) withAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		state, err := configurationFromRequest(r)
		if err != nil {
			internalError(w, r, err)
			return
		}

		if !authEnabled(state.conf, merger.SectionAPIAuth) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		if !h.authorize(w, r, state.conf, merger.SectionAPIAuth, token) {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withSessionAuth gates browser routes on session_auth. The callback
// receives the value of the cookie named by general.session_name.
func (h *Handler) withSessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := configurationFromRequest(r)
		if err != nil {
			internalError(w, r, err)
			return
		}

		var sessionID string
		name, _ := state.conf.GetConfig(merger.SectionGeneral, "session_name")
		if cookie, err := r.Cookie(name.StringOr("")); err == nil {
			sessionID = cookie.Value
		}

		if !h.authorize(w, r, state.conf, merger.SectionSessionAuth, sessionID) {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authorize runs the section's callback and writes the rejection itself:
// 401 when the callback denies, 500 when it fails.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, conf *app.Configuration, section string, args ...any) bool {
	log := logger.FromRequest(r)

	allowed, err := conf.Authenticate(r.Context(), section, args...)
	if err != nil {
		log.Error().Err(err).Str("auth", section).Msg("auth callback failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return false
	}
	if !allowed {
		log.Info().Str("auth", section).Msg("request rejected")
		if section == merger.SectionHTTPAuth {
			realm, _ := conf.GetConfig(merger.SectionGeneral, "application_display_name")
			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", realm.StringOr("")))
		}
		http.Error(w, app.MsgUnauthorized, http.StatusUnauthorized)
		return false
	}

	return true
}

func authEnabled(conf *app.Configuration, section string) bool {
	enabled, _ := conf.GetConfig(section, "enable")
	return enabled.BoolOr(false)
}

// getTokenFromAuthHeader extracts the token from an "Authorization: Bearer
// <token>" header value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) == 0 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	if len(parts) < 2 {
		return "", ErrEmptyToken
	}
	if len(parts) > 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	return parts[1], nil
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Error().Err(err).Send()
	http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
}
