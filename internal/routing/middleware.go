package routing

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/halvard/biopage/internal/hostname"
	"github.com/halvard/biopage/internal/metrics"
)

// Middleware resolves the tenant for every inbound request from its host
// header and applies the resulting decision to the request pipeline.
func Middleware(parser *hostname.Parser, engine *Engine, proxies *TrustedProxies, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, scheme := effectiveHost(r, proxies)
			requestURL := scheme + "://" + host + r.URL.RequestURI()

			desc := parser.Parse(host, requestURL)
			decision := engine.Decide(r.Context(), desc, r.URL.Path)

			metrics.RoutingDecisionsTotal.WithLabelValues(desc.Kind.String(), decision.Action.String()).Inc()

			switch decision.Action {
			case ActionRedirect:
				http.Redirect(w, r, decision.TargetURL, http.StatusFound)

			case ActionRewrite:
				logger.Debug().
					Str("host", desc.RawHost).
					Str("from", r.URL.Path).
					Str("to", decision.TargetPath).
					Msg("rewrite")
				r.URL.Path = decision.TargetPath
				r.URL.RawPath = ""
				next.ServeHTTP(w, r)

			case ActionNotFound:
				http.NotFound(w, r)

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// effectiveHost returns the host and scheme for routing, honoring
// X-Forwarded-Host and X-Forwarded-Proto only from trusted proxy hops.
func effectiveHost(r *http.Request, proxies *TrustedProxies) (host, scheme string) {
	host = r.Host
	scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if proxies != nil && proxies.Trusted(r.RemoteAddr) {
		if fh := r.Header.Get("X-Forwarded-Host"); fh != "" {
			host = fh
		}
		if fp := r.Header.Get("X-Forwarded-Proto"); fp == "http" || fp == "https" {
			scheme = fp
		}
	}
	return host, scheme
}
