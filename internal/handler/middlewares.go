package handler

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/harborview-interiors/schedule-planner/internal/backend"
	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

type AuthClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hj.Hijack()
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog mangles multi-line stacks
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth verifies the bearer JWT issued by the login service, puts the
// viewer identity on the context, and keeps the raw token around so
// outbound CRM calls can forward it.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authz, "Bearer ")
		if !ok || tokenString == "" {
			h.errorResponse(w, r, "not authenticated")
			return
		}

		claims := &AuthClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		viewer := domain.Viewer{
			ID:   userID,
			Name: claims.Name,
			Role: domain.Role(claims.Role),
		}

		ctx := context.WithValue(r.Context(), ViewerCtxKey, viewer)
		ctx = backend.WithToken(ctx, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) viewer(r *http.Request) domain.Viewer {
	return r.Context().Value(ViewerCtxKey).(domain.Viewer)
}
