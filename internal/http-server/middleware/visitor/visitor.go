package visitor

import (
	"SchoolPick/internal/lib/api/cont"
	"SchoolPick/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"log/slog"
	"net/http"
	"time"
)

type Options struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// New identifies the browser by a random id kept in a cookie, issuing one
// on the first request, and logs every request.
func New(log *slog.Logger, opts Options) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.visitor")
	log.With(mod).Info("visitor middleware initialized", slog.String("cookie", opts.CookieName))

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			visitorID, fresh := readVisitor(r, opts.CookieName)
			if fresh {
				http.SetCookie(ww, &http.Cookie{
					Name:     opts.CookieName,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(opts.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			t1 := time.Now()
			defer func() {
				log.With(
					mod,
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", remote),
					slog.String("request_id", id),
					sl.Secret("visitor", visitorID),
					slog.Bool("new_visitor", fresh),
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			ww.Header().Set("X-Request-ID", id)
			next.ServeHTTP(ww, r.WithContext(cont.PutVisitor(r.Context(), visitorID)))
		}

		return http.HandlerFunc(fn)
	}
}

// readVisitor returns the cookie's id, or a new one when the cookie is
// missing or was not issued by us.
func readVisitor(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err == nil {
		if parsed, err := uuid.Parse(cookie.Value); err == nil {
			return parsed.String(), false
		}
	}
	return uuid.NewString(), true
}
