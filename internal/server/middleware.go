package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sant0-9/todoai/internal/config"
	"github.com/sant0-9/todoai/internal/logger"
)

// LoggerMiddleware logs each request and puts a request-scoped logger on
// the request context.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		reqLog := log.With("method", c.Request.Method, "path", path)
		c.Request = c.Request.WithContext(logger.ContextWithLogger(c.Request.Context(), reqLog))

		c.Next()

		reqLog.Info("request completed",
			"status_code", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
			"error", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}

// CORSMiddleware lets a browser front-end on another origin call the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimitMiddleware caps requests per client IP. A zero limit lets
// everything through.
func RateLimitMiddleware(rate config.RateConfig) gin.HandlerFunc {
	if rate.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: rate.Period,
		Limit:  rate.Limit,
	})
	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many AI help requests, please wait a moment."})
		}),
	)
}
