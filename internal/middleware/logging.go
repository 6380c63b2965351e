package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(requestFields(r)).Trace(" ====> request")
			next.ServeHTTP(w, r)
		})
	}
}

func requestFields(r *http.Request) log.Fields {
	fields := log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"ua":     r.Header.Get("User-Agent"),
	}
	// set by otelmux further up the chain
	if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
		fields["trace_id"] = sc.TraceID().String()
	}
	return fields
}
