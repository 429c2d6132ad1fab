package server

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/tartampluch/go-age/internal/config"
)

// securityHeaders adds the usual browser hardening headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderCSP, config.CSPSelf)
		w.Header().Set(config.HeaderXFrameOptions, config.FrameDeny)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderReferrerPolicy, config.ReferrerStrict)
		next.ServeHTTP(w, r)
	})
}

// plaintextHTTP marks requests without TLS so csrf skips its HTTPS-only Referer check.
// The server only binds to localhost.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}

func csrfProtect(key []byte) func(http.Handler) http.Handler {
	return csrf.Protect(
		key,
		csrf.Secure(false),
		csrf.Path(config.RouteRoot),
	)
}
