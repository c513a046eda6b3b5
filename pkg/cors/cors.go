// Package cors wraps HTTP handlers with origin-gated CORS response headers
// and answers preflight requests without reaching the wrapped handler.
//
// The default policy (nil or AllowAll) echoes back any non-empty Origin.
// When both an allow-list and a predicate are configured only one needs to
// match, and the predicate only runs if no allow-list entry matched.
package cors

import "net/http"

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"

	AllowedMethods = "OPTIONS,POST"
	AllowedHeaders = "Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date"
)

// Wrap returns a handler that sets CORS headers for origins granted by policy.
// OPTIONS requests are answered with 200 and an empty body and never reach next.
func Wrap(next http.Handler, policy Policy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if Allowed(policy, origin) {
			h := w.Header()
			h.Set(HeaderAllowOrigin, origin)
			h.Set(HeaderAllowMethods, AllowedMethods)
			h.Set(HeaderAllowHeaders, AllowedHeaders)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WrapFunc is Wrap for a plain handler function.
func WrapFunc(fn http.HandlerFunc, policy Policy) http.Handler {
	return Wrap(fn, policy)
}

// Middleware adapts Wrap to the func(http.Handler) http.Handler shape used by
// routers such as chi.
func Middleware(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Wrap(next, policy)
	}
}
