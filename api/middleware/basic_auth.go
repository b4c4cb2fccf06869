package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/douglasalbuquerque/vision-api/api/responses"
	pkgerrors "github.com/douglasalbuquerque/vision-api/pkg/errors"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
)

type credentialChecker interface {
	Verify(username, password string) bool
}

// FailureCounter tracks failed authentication attempts per client.
type FailureCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, keys ...string) error
	AuthFailureKey(clientID string) string
}

// BasicAuthPolicy configures the challenge realm and failed-attempt throttling.
type BasicAuthPolicy struct {
	Realm         string
	FailureWindow time.Duration
	FailureLimit  int
	// TrustProxyHeaders keys failures by X-Forwarded-For / X-Real-IP instead
	// of the connection's remote address.
	TrustProxyHeaders bool
}

func (p BasicAuthPolicy) limiting() bool {
	return p.FailureWindow > 0 && p.FailureLimit > 0
}

func (p BasicAuthPolicy) challenge() string {
	realm := strings.ReplaceAll(p.Realm, `"`, "")
	if realm == "" {
		realm = "Restricted"
	}
	return fmt.Sprintf(`Basic realm="%s", charset="UTF-8"`, realm)
}

// BasicAuth requires HTTP Basic credentials accepted by checker. When counter
// is non-nil, clients exceeding the failure limit within the window get 429
// until the window expires.
func BasicAuth(checker credentialChecker, counter FailureCounter, policy BasicAuthPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	limit := counter != nil && policy.limiting()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r, policy.TrustProxyHeaders)

			var key string
			var failures int64
			if limit {
				key = counter.AuthFailureKey(ip)
				count, err := counter.Count(ctx, key)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "auth failure counter"))
					return
				}
				if count >= int64(policy.FailureLimit) {
					respondBlocked(ctx, logg, w, policy, ip, count)
					return
				}
				failures = count
			}

			username, password, ok := r.BasicAuth()
			if !ok || !checker.Verify(username, password) {
				if limit {
					if _, err := counter.IncrWithTTL(ctx, key, policy.FailureWindow); err != nil && logg != nil {
						logg.Error(logg.WithField(ctx, "ip", ip), "auth.failure_counter", err)
					}
				}
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"ip": ip, "credentials_present": ok}), "auth.rejected")
				}
				w.Header().Set("WWW-Authenticate", policy.challenge())
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials"))
				return
			}

			if failures > 0 {
				if err := counter.Del(ctx, key); err != nil && logg != nil {
					logg.Error(logg.WithField(ctx, "ip", ip), "auth.failure_counter_reset", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, username)))
		})
	}
}

func respondBlocked(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy BasicAuthPolicy, ip string, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"ip":             ip,
			"attempts":       count,
			"limit":          policy.FailureLimit,
			"window_seconds": int(policy.FailureWindow.Seconds()),
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(policy.FailureWindow.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many failed authentication attempts"))
}

func clientIP(r *http.Request, trustProxy bool) string {
	if r == nil {
		return ""
	}
	if !trustProxy {
		return remoteHost(r)
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
