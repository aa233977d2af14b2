package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
)

type ctxKeyRequestID struct{}
type ctxKeyUserID struct{}

var (
	RequestIDKey = ctxKeyRequestID{}
	userIDKey    = ctxKeyUserID{}
)

// requestIDMiddleware keeps the caller's X-Request-Id or assigns a new one.
func (api *API) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			id, err := uuid.NewV4()
			if err != nil {
				log.Errorf("[requestIDMiddleware] failed to generate request ID: %v", err)
			} else {
				reqID = id.String()
			}
		}
		w.Header().Set("X-Request-Id", reqID)

		ctx := context.WithValue(r.Context(), RequestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (api *API) headerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (api *API) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := newResponseLogger(w)
		next.ServeHTTP(lw, r)
		log.Infof("[%s] %s %s -> %d in %s", shorten(GetRequestID(r.Context())), r.Method, r.URL.Path, lw.Status(), time.Since(start))
	})
}

// requireAuth rejects requests without a valid bearer token with 401.
func (api *API) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sID := shorten(GetRequestID(r.Context()))

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			log.Debugf("[requireAuth][%s] missing bearer token", sID)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		uid, err := api.tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			log.Debugf("[requireAuth][%s] rejected token: %v", sID, err)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if _, err := api.db.User(r.Context(), uid); err != nil {
			log.Debugf("[requireAuth][%s] token for unknown user %d", sID, uid)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

func userID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// shorten truncates s to 6 characters followed by "...".
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}

type responseLogger struct {
	w      http.ResponseWriter
	status int
}

func newResponseLogger(w http.ResponseWriter) *responseLogger {
	return &responseLogger{w, http.StatusOK}
}

func (l *responseLogger) WriteHeader(code int) {
	l.status = code
	l.w.WriteHeader(code)
}

func (l *responseLogger) Write(b []byte) (int, error) {
	return l.w.Write(b)
}

func (l *responseLogger) Header() http.Header {
	return l.w.Header()
}

func (l *responseLogger) Status() int {
	return l.status
}
