package http

import (
	"math"
	"net/http"
	"strconv"

	"claimtrust/internal/domain"

	"github.com/gin-gonic/gin"
)

func (s *Server) enforceRateLimit(c *gin.Context, endpoint string) bool {
	decision, err := s.gate.Admit(c.Request.Context(), c.ClientIP(), endpoint)
	if err != nil {
		writeErrorCode(c, http.StatusTooManyRequests, "RATE_LIMIT_UNAVAILABLE", "rate limiter unavailable")
		return false
	}
	setRateLimitHeaders(c, decision)
	if !decision.Allowed {
		writeErrorCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
		return false
	}
	return true
}

func setRateLimitHeaders(c *gin.Context, d domain.RateLimitDecision) {
	// Limit 0 means no policy applied (gate disabled or failed open).
	if d.Limit <= 0 {
		return
	}
	c.Header("RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Header("RateLimit-Remaining", strconv.Itoa(d.Remaining))
	c.Header("RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	if !d.Allowed {
		c.Header("Retry-After", strconv.FormatInt(int64(math.Ceil(d.RetryAfter.Seconds())), 10))
	}
}
