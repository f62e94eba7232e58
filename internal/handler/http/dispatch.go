package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/app"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/metrics"
	"github.com/MKhiriev/go-app-kernel/internal/utils"
)

// contentTypes maps general.output_format to a MIME type.
var contentTypes = map[string]string{
	"html": "text/html",
	"json": "application/json",
	"xml":  "application/xml",
	"text": "text/plain",
	"csv":  "text/csv",
}

// dispatch runs the application for a bootstrapped request and writes its
// response.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	state, err := configurationFromRequest(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	response, err := h.boot.Dispatch(r.Context(), state.conf)
	metrics.ObserveBootstrap(merger.ContextBrowser, state.started, err)
	if err != nil {
		log.Error().Err(err).Msg("application failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteBody(w, []byte(response), contentType(state.conf), http.StatusOK)
}

func contentType(conf *app.Configuration) string {
	format, _ := conf.GetConfig(merger.SectionGeneral, "output_format")
	mime, ok := contentTypes[strings.ToLower(format.StringOr("html"))]
	if !ok {
		mime = "text/plain"
	}

	charset, _ := conf.GetConfig(merger.SectionGeneral, "charset")
	if cs := charset.StringOr(""); cs != "" {
		return mime + "; charset=" + cs
	}
	return mime
}
