package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-app-kernel/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID reuses the incoming X-Trace-ID or generates one, echoes it in
// the response and attaches it to both the request logger and the context.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = h.ids.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		ctx := utils.WithTraceID(l.WithContext(r.Context()), traceID)

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
