package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/respond"
)

type contextKey int

const (
	contextKeyAdminID contextKey = iota
	contextKeyToken
	contextKeyRequestID
)

// withMiddleware wraps the route table in the outer middleware chain:
// request ID, access logging, panic recovery, metrics.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return s.requestID(s.accessLog(s.recoverPanic(s.instrument(next))))
}

// getOrGenerateRequestID extracts the request ID from headers or generates a
// new one so every log line of a request can be correlated.
func getOrGenerateRequestID(r *http.Request) string {
	if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
		return reqID
	}
	return uuid.NewString()
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := getOrGenerateRequestID(r)
		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}

// recoverPanic converts handler panics into rendered 500 responses so a
// single misbehaving request cannot take the process down.
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				env, status := s.renderer.Render(fmt.Errorf("panic: %v", v))
				respond.Write(w, env, status)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(r.Method, route, status, time.Since(start))
	})
}

// authenticated guards a handler behind bearer-token authentication. The
// validated admin ID and the presented token are placed on the request
// context for the wrapped handler.
func (s *Server) authenticated(fn handlerFunc) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		token, ok := bearerToken(r)
		if !ok {
			return auth.ErrUnauthenticated
		}
		adminID, err := s.tokens.Validate(token)
		if err != nil {
			return err
		}
		ctx := context.WithValue(r.Context(), contextKeyAdminID, adminID)
		ctx = context.WithValue(ctx, contextKeyToken, token)
		return fn(w, r.WithContext(ctx))
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

// RequestID returns the request ID stored on the context, if any.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(contextKeyRequestID).(string)
	return reqID
}

// AdminID returns the authenticated admin's ID stored on the context.
func AdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKeyAdminID).(int64)
	return id, ok
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(contextKeyToken).(string)
	return token
}
