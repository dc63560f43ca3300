package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/jub0bs/cors"
)

// WildcardOrigin marks a policy that admits any origin. It is only legal for
// non-credentialed policies.
const WildcardOrigin = "*"

// CORSPolicy is the immutable cross-origin access policy consulted by the
// transport layer. Construct it with NewCORSPolicy; a zero value admits
// nothing.
type CORSPolicy struct {
	allowedOrigins   []string
	allowedMethods   []string
	allowedHeaders   []string
	allowCredentials bool
}

// NewCORSPolicy validates and builds a cross-origin policy. It fails when the
// origin set is empty, and when allowCredentials is combined with the wildcard
// origin: a credentialed response paired with an open origin is meaningless
// under the browser CORS model, so that combination must never reach the
// serving path.
func NewCORSPolicy(origins, methods, headers []string, allowCredentials bool) (CORSPolicy, error) {
	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return CORSPolicy{}, fmt.Errorf("cors policy: at least one allowed origin is required")
	}
	if allowCredentials && slices.Contains(cleaned, WildcardOrigin) {
		return CORSPolicy{}, fmt.Errorf("cors policy: credentialed access cannot be combined with the wildcard origin")
	}
	return CORSPolicy{
		allowedOrigins:   cleaned,
		allowedMethods:   slices.Clone(methods),
		allowedHeaders:   slices.Clone(headers),
		allowCredentials: allowCredentials,
	}, nil
}

// AllowedOrigins returns the full configured origin set.
func (p CORSPolicy) AllowedOrigins() []string { return slices.Clone(p.allowedOrigins) }

// AllowedMethods returns the full configured method set.
func (p CORSPolicy) AllowedMethods() []string { return slices.Clone(p.allowedMethods) }

// AllowedHeaders returns the full configured request-header set.
func (p CORSPolicy) AllowedHeaders() []string { return slices.Clone(p.allowedHeaders) }

// AllowCredentials reports whether credentialed cross-origin access is
// permitted.
func (p CORSPolicy) AllowCredentials() bool { return p.allowCredentials }

// OriginAllowed reports whether the given Origin header value is admitted by
// the policy: an exact match against the configured set, or any origin when
// the policy carries the wildcard marker (which NewCORSPolicy only permits
// for non-credentialed policies).
func (p CORSPolicy) OriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	if slices.Contains(p.allowedOrigins, WildcardOrigin) {
		return true
	}
	return slices.Contains(p.allowedOrigins, origin)
}

// CORS builds the enforcement middleware for the policy. Enforcement is
// delegated to github.com/jub0bs/cors: it answers preflight requests
// (validating the requested method and headers against the configured sets
// and echoing only what was requested), annotates actual responses with
// Access-Control-Allow-Origin and, for credentialed policies,
// Access-Control-Allow-Credentials, and denies preflights for anything
// outside the policy. Construction errors are configuration errors and must
// abort startup.
func CORS(policy CORSPolicy) (func(http.Handler) http.Handler, error) {
	cfg := cors.Config{
		Credentialed:   policy.allowCredentials,
		Methods:        policy.allowedMethods,
		RequestHeaders: policy.allowedHeaders,
	}
	if slices.Contains(policy.allowedOrigins, WildcardOrigin) {
		cfg.Origins = []string{WildcardOrigin}
	} else {
		cfg.Origins = policy.allowedOrigins
	}
	mw, err := cors.NewMiddleware(cfg)
	if err != nil {
		return nil, fmt.Errorf("build cors middleware: %w", err)
	}
	return mw.Wrap, nil
}
