// Package pipeline sequences profile loading, rendering and emission for a
// single document.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/haslett/internal/emit"
	"github.com/jonathan/haslett/internal/logging"
	"github.com/jonathan/haslett/internal/profile"
	"github.com/jonathan/haslett/internal/rendering"
)

// Step names reported through ProgressEvent.
const (
	StepLoad   = "load"
	StepRender = "render"
	StepEmit   = "emit"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string
	Message string
	RunID   string
}

// ProgressCallback is called after each step completes
type ProgressCallback func(event ProgressEvent)

// Request describes one document to produce.
type Request struct {
	Profile  string
	Template string
	Format   emit.Format
	Output   string
	// Extra keys are merged into a copy of the profile before rendering.
	Extra map[string]any
}

// Result reports what a run produced.
type Result struct {
	RunID  string
	Output string
	Format emit.Format
	Kind   rendering.Kind
}

// Runner wires the store, renderer and emitter together.
type Runner struct {
	Store      *profile.Store
	Renderer   *rendering.Renderer
	Emitter    *emit.Emitter
	OnProgress ProgressCallback

	log zerolog.Logger
}

// NewRunner returns a Runner over the given components.
func NewRunner(store *profile.Store, renderer *rendering.Renderer, emitter *emit.Emitter) *Runner {
	return &Runner{
		Store:    store,
		Renderer: renderer,
		Emitter:  emitter,
		log:      logging.Get("pipeline"),
	}
}

// Run loads the profile, renders it and writes the output. The first failing
// step ends the run; its error is returned unchanged so callers can match on
// the component's error type.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	log := r.log.With().Str("run_id", runID).Logger()

	log.Info().Str("profile", req.Profile).Str("template", req.Template).Str("format", string(req.Format)).Msg("Starting run")

	data, err := r.Store.Load(req.Profile)
	if err != nil {
		log.Debug().Err(err).Msg("Profile load failed")
		return nil, err
	}
	for key, value := range req.Extra {
		data = data.With(key, value)
	}
	r.progress(runID, StepLoad, fmt.Sprintf("loaded profile %s (%d keys)", req.Profile, len(data)))

	doc, err := r.Renderer.Render(req.Template, data)
	if err != nil {
		log.Debug().Err(err).Msg("Render failed")
		return nil, err
	}
	r.progress(runID, StepRender, fmt.Sprintf("rendered %s as %s", req.Template, doc.Kind))

	text := doc.Text
	if req.Format == emit.FormatPDF && doc.Kind == rendering.KindText {
		text, err = rendering.TextToHTML(doc.Text)
		if err != nil {
			return nil, err
		}
	}

	if err := r.Emitter.Emit(ctx, text, req.Format, req.Output); err != nil {
		log.Debug().Err(err).Msg("Emit failed")
		return nil, err
	}
	r.progress(runID, StepEmit, fmt.Sprintf("wrote %s", req.Output))

	log.Info().Str("output", req.Output).Msg("Run completed")

	return &Result{
		RunID:  runID,
		Output: req.Output,
		Format: req.Format,
		Kind:   doc.Kind,
	}, nil
}

func (r *Runner) progress(runID, step, message string) {
	if r.OnProgress != nil {
		r.OnProgress(ProgressEvent{Step: step, Message: message, RunID: runID})
	}
}
