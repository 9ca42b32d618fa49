// Package http exposes the claims trust-scoring engine over a small
// JSON API.
package http

import (
	"claimtrust/internal/config"
	"claimtrust/internal/infra/ratelimit"
	"claimtrust/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg    config.Config
	claims *usecase.ClaimsService
	gate   *ratelimit.Gate
	r      *gin.Engine
}

type ServerDeps struct {
	Claims    *usecase.ClaimsService
	RateLimit *ratelimit.Gate
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		claims: deps.Claims,
		gate:   deps.RateLimit,
		r:      r,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/healthz", s.handleHealth)

	v1 := s.r.Group("/v1")
	v1.POST("/claims/verify", s.handleVerifyClaim)
	v1.GET("/claims/:id", s.handleGetClaim)
	v1.PATCH("/claims/:id/status", s.handleSetStatus)
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.r
}
