package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theblitlabs/system-stats/internal/api/handlers"
	"github.com/theblitlabs/system-stats/internal/services"
	"github.com/theblitlabs/system-stats/internal/telemetry"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

// CheckAPIKey compares the named header against secret. It fails closed: an
// absent or empty header is ErrMissingAPIKey and any other mismatch is
// ErrInvalidAPIKey.
func CheckAPIKey(r *http.Request, header, secret string) error {
	key := r.Header.Get(header)
	if key == "" {
		return services.ErrMissingAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
		return services.ErrInvalidAPIKey
	}
	return nil
}

// APIKey rejects requests whose header does not carry the shared secret
// before any other handler logic runs.
func APIKey(header, secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckAPIKey(r, header, secret); err != nil {
				log := logger.WithComponent("auth")
				log.Warn().
					Err(err).
					Str("remote_addr", r.RemoteAddr).
					Str("path", r.URL.Path).
					Msg("Request rejected")
				telemetry.RecordStatsOutcome(handlers.WriteError(w, err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
