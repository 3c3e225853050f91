package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/service/cache"
	"github.com/sandevgo/sorcerer/internal/service/memory"
	"github.com/sandevgo/sorcerer/pkg/log"
)

// Deps are the collaborators shared by all branch handlers.
type Deps struct {
	Gen       core.Generator
	Knowledge core.KnowledgeLookup
	Retriever core.Retriever
	Cache     *cache.Cache
	Memory    *memory.Memory
	Charts    core.ChartComputer
	TarotLog  core.TarotLogRepository

	MaxQuestionChars int
	Location         *time.Location
	Now              func() time.Time
}

// NewDeps fills the clock and limits from config.
func NewDeps(cfg *config.AppConfig) *Deps {
	return &Deps{
		MaxQuestionChars: cfg.MaxQuestionChars,
		Location:         cfg.Location(),
		Now:              time.Now,
	}
}

func (d *Deps) now() time.Time {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.FixedZone("", 7*3600)
	}
	return now().In(loc)
}

// Router dispatches a request to the handler registered for its domain.
type Router struct {
	handlers map[core.Domain]core.Handler
}

// NewRouter registers the five domain handlers.
func NewRouter(d *Deps) *Router {
	return &Router{handlers: map[core.Domain]core.Handler{
		core.DomainAstrology:  NewAstrology(d),
		core.DomainNumerology: NewNumerology(d),
		core.DomainTarot:      NewTarot(d),
		core.DomainHoroscope:  NewHoroscope(d),
		core.DomainChat:       NewChat(d),
	}}
}

// Register replaces the handler for a domain.
func (r *Router) Register(domain core.Domain, h core.Handler) {
	r.handlers[domain] = h
}

// Dispatch runs the handler for req.Domain. Unknown domains are an InputError.
func (r *Router) Dispatch(ctx context.Context, req *core.Request) (core.Response, error) {
	logger := log.FromCtx(ctx)

	name := strings.ToLower(strings.TrimSpace(req.Domain))
	h, ok := r.handlers[core.Domain(name)]
	if !ok {
		requests.WithLabelValues("unknown", "input_error").Inc()
		return core.Response{}, core.NewInputError(fmt.Sprintf("Invalid domain: %s", name))
	}

	start := time.Now()
	resp, err := h.Handle(ctx, req)
	switch {
	case err == nil:
		requests.WithLabelValues(name, "ok").Inc()
	case core.IsInputError(err):
		requests.WithLabelValues(name, "input_error").Inc()
		logger.Debug().Err(err).Str("domain", name).Msg("rejected request")
		return core.Response{}, err
	default:
		requests.WithLabelValues(name, "error").Inc()
		logger.Error().Err(err).Str("domain", name).Msg("handler failed")
		return core.Response{}, fmt.Errorf("%s handler: %w", name, err)
	}

	logger.Debug().
		Str("domain", name).
		Str("feature", resp.Feature).
		Dur("elapsed", time.Since(start)).
		Msg("request handled")

	resp.Domain = name
	return resp, nil
}
