package gen

import (
	"context"
	"errors"
	"sync"

	"github.com/enkigen/enki/metamodel"
)

// Generator runs one generation at a time and reports its phase.
type Generator struct {
	cfg *Config

	mu    sync.Mutex
	phase Phase
}

// NewGenerator returns a generator for cfg. A target directory is required.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil || cfg.Target == "" {
		return nil, NewConfigError("target", nil, "missing target directory in config")
	}
	return &Generator{cfg: cfg}, nil
}

// Phase returns the phase of the current or last run.
func (g *Generator) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Generator) setPhase(p Phase) {
	g.mu.Lock()
	g.phase = p
	g.mu.Unlock()
}

// Run collects, emits and writes the artifacts of model. On error the phase
// is PhaseFailed and anything already written must be discarded.
func (g *Generator) Run(ctx context.Context, model *metamodel.Model) (arts *Artifacts, err error) {
	defer func() {
		if err != nil {
			g.setPhase(PhaseFailed)
		}
	}()
	g.setPhase(PhaseCollecting)
	log := g.cfg.logger()
	log.Debug("generation phase", "phase", PhaseCollecting.String())
	md, err := Collect(model, g.cfg)
	if err != nil {
		return nil, err
	}
	if arts, err = emit(model, md, g.cfg, g.setPhase); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewGenerationError(PhaseWriting.String(), "", "", err)
	}
	g.setPhase(PhaseWriting)
	if err := NewWriter(g.cfg.Target).WithWorkers(g.cfg.Workers).Write(ctx, arts); err != nil {
		var gerr *GenerationError
		if !errors.As(err, &gerr) {
			err = NewGenerationError(PhaseWriting.String(), "", "", err)
		}
		return nil, err
	}
	g.setPhase(PhaseDone)
	log.Info("generated mapping", "target", g.cfg.Target, "classes", len(md.classes), "files", len(arts.Files()))
	return arts, nil
}

// Generate runs a single generation of model with cfg.
func Generate(ctx context.Context, model *metamodel.Model, cfg *Config) (*Artifacts, error) {
	g, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx, model)
}
