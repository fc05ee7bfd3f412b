package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/metrics"
	"nclx/gymnotetaker/internal/service"
)

// Constants for context keys
const (
	ContextAccountIDKey = "accountID"
	ContextTokenKey     = "sessionToken"
)

// AuthMiddleware resolves the Bearer token to an account through the session store.
func AuthMiddleware(accounts service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		token := parts[1]

		accountID, err := accounts.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				abortWithError(c, http.StatusUnauthorized, err.Error())
			} else {
				log.Errorf("auth middleware: validate session: %s", err)
				abortWithError(c, http.StatusInternalServerError, "Could not verify session")
			}
			return
		}

		c.Set(ContextAccountIDKey, accountID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func getAccountIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextAccountIDKey)
	if !exists {
		return "", errors.New("account ID not found in context")
	}
	id, ok := idRaw.(string)
	if !ok {
		return "", errors.New("invalid account ID type in context")
	}
	return id, nil
}

// RequestMetrics records count, in-flight gauge and latency per matched route.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.GaugeRequests.Inc()
		defer m.GaugeRequests.Dec()

		begin := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
		m.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Recovery turns a handler panic into a 500 and counts it.
func Recovery(m *metrics.Manager) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		m.CounterHandlePanic.Inc()
		log.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	})
}

// RequestLogger logs one line per request at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(begin),
			"ip":       c.ClientIP(),
		}).Debug("request served")
	}
}

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per client IP for the named route group.
func RateLimit(rateLimiter RequestRateLimiter, name string, allowedPerMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := rateLimiter.Allow(
			c.Request.Context(),
			name+":"+c.ClientIP(),
			redis_rate.PerMinute(allowedPerMin),
		)
		if err != nil {
			log.Errorf("rate limit %s: %s", name, err)
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
		abortWithError(c, http.StatusTooManyRequests, fmt.Sprintf("retry after %.0f seconds", res.RetryAfter.Seconds()))
	}
}
