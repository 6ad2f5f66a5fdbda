package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *zap.Logger
	Now    func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a POST that repeats an
// Idempotency-Key on the same endpoint. Only 2xx responses are stored.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()

		existing, err := config.Repo.GetByKey(ctx, key, endpoint)
		if err != nil {
			logger.Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired(now()) {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, existing.ContentType, []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          key,
			Endpoint:     endpoint,
			ResponseCode: status,
			ContentType:  c.Writer.Header().Get("Content-Type"),
			ResponseBody: blw.body.String(),
			ExpiresAt:    now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			logger.Warn("idempotency store failed", zap.String("key", key), zap.Error(err))
		}
	}
}
