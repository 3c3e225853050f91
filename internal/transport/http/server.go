package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

// Dispatcher routes a request envelope to a domain handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *core.Request) (core.Response, error)
}

type Server struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	srv    *http.Server
}

func NewServer(ctx context.Context, cfg *config.AppConfig, router Dispatcher) *Server {
	if !log.FromCtx(ctx).Debug().Enabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		withContext(ctx),
		accessLog(),
		recovery(),
		cors(),
	)

	engine.GET("/healthz", handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1", rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		v1.POST("/divine", handleDivine(router, ""))
		v1.POST("/chat", handleDivine(router, string(core.DomainChat)))
	}

	return &Server{
		cfg:    cfg,
		engine: engine,
		srv: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
