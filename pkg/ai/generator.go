package ai

import (
	"context"
	"errors"
	"time"

	"resume-builder/internal/model"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Where generated text came from.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Remote is the ai-service surface the generator uses.
type Remote interface {
	Summary(ctx context.Context, d model.ResumeData) (string, error)
	ExperienceDescription(ctx context.Context, position, company string) (string, error)
}

// Generator prefers the remote service and falls back to the built-in
// templates on any failure, including an open circuit.
type Generator struct {
	remote Remote
	cb     *gobreaker.CircuitBreaker
	log    zerolog.Logger
}

// NewGenerator accepts a nil remote, in which case only local text is used.
func NewGenerator(remote Remote, log zerolog.Logger) *Generator {
	g := &Generator{remote: remote, log: log}
	g.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai-service",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return g
}

func (g *Generator) Summary(ctx context.Context, d model.ResumeData) (string, string) {
	if g.remote != nil {
		out, err := g.cb.Execute(func() (interface{}, error) { return g.remote.Summary(ctx, d) })
		if text, ok := g.accept(out, err, "summary"); ok {
			return text, SourceRemote
		}
	}
	return GenerateSummary(d), SourceLocal
}

func (g *Generator) ExperienceDescription(ctx context.Context, position, company string) (string, string) {
	if g.remote != nil {
		out, err := g.cb.Execute(func() (interface{}, error) { return g.remote.ExperienceDescription(ctx, position, company) })
		if text, ok := g.accept(out, err, "experience"); ok {
			return text, SourceRemote
		}
	}
	return GenerateExperienceDescription(position, company), SourceLocal
}

// BreakerState reports the remote circuit, for health output.
func (g *Generator) BreakerState() string { return g.cb.State().String() }

func (g *Generator) accept(out interface{}, err error, what string) (string, bool) {
	if err != nil {
		ev := g.log.Warn().Err(err).Str("kind", what)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			ev = g.log.Debug().Err(err).Str("kind", what)
		}
		ev.Msg("ai: falling back to local text")
		return "", false
	}
	text, _ := out.(string)
	return text, text != ""
}
