package server

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey is the gin context key for the per-request ID.
const requestIDKey = "request_id"

// emailPattern accepts anything shaped like local@domain.tld.
// Checked before any network call.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// requestID assigns a UUID to every request and echoes it in the
// X-Request-Id header.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// requestLogger logs one line per request with method, path, status,
// duration, and request ID.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// recovery converts panics into a 500 envelope instead of a dropped
// connection. Domain errors never reach this path.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("panic recovered",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(requestIDKey)),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{
			Code: codeFail,
			Msg:  "服务器内部错误",
			Data: nil,
		})
	})
}

// validateEmail rejects malformed email path parameters before any
// upstream work happens.
func (s *Server) validateEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !emailPattern.MatchString(c.Param("email")) {
			fail(c, "邮箱格式不正确")
			c.Abort()

			return
		}

		c.Next()
	}
}

// adminTokenBody is the request body of admin-gated endpoints.
type adminTokenBody struct {
	Token string `json:"token"`
}

// adminAuth gates an endpoint on the process-wide shared secret. The
// upstream API is never called when the token is missing or wrong.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// A malformed body leaves the token empty and is answered like a
		// missing one; the bind error is discarded on purpose.
		var body adminTokenBody
		_ = c.ShouldBindJSON(&body)

		if body.Token == "" {
			fail(c, "请提供访问令牌")
			c.Abort()

			return
		}

		if body.Token != s.cfg.AdminToken {
			fail(c, "访问令牌无效")
			c.Abort()

			return
		}

		c.Next()
	}
}
