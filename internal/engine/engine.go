// Package engine drives the niri event stream through reconciliation and
// projection into a sink.
package engine

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"

	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/internal/reconcile"
	"github.com/grovetools/niribar/pkg/niri"
	"github.com/sirupsen/logrus"
)

// Source yields compositor events in order. It returns io.EOF when the stream ends.
type Source interface {
	Next(ctx context.Context) (niri.Event, error)
}

// Sink receives one projected tree per applied event.
type Sink interface {
	Emit(tree *projection.Tree) error
}

// Options tune the loop.
type Options struct {
	// Dedupe skips emission when the tree is identical to the last one emitted.
	Dedupe bool
}

// Engine owns the reconciled model and feeds it from a single source.
type Engine struct {
	source Source
	sink   Sink
	logger *logrus.Entry
	opts   Options

	state *reconcile.State
	last  []byte
}

// New creates a new Engine instance with an empty model.
func New(source Source, sink Sink, logger *logrus.Entry, opts Options) *Engine {
	return &Engine{
		source: source,
		sink:   sink,
		logger: logger,
		opts:   opts,
		state:  reconcile.New(),
	}
}

// Run consumes events until the stream ends, ctx is canceled, or an event
// cannot be reconciled. A clean end of stream or cancellation returns nil.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Debug("Starting event loop")

	var applied int
	for {
		ev, err := e.source.Next(ctx)
		if err != nil {
			switch {
			case stderrors.Is(err, io.EOF):
				e.logger.WithField("events", applied).Info("Event stream closed")
				return nil
			case ctx.Err() != nil:
				e.logger.WithField("events", applied).Debug("Event loop canceled")
				return nil
			}
			return err
		}

		if err := e.Step(ev); err != nil {
			if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}
		applied++
	}
}

// Step applies a single event and emits the resulting tree.
func (e *Engine) Step(ev niri.Event) error {
	if u, ok := ev.(*niri.Unknown); ok {
		e.logger.WithField("event", u.Name).Debug("Ignoring unknown event")
	} else {
		e.logger.WithField("event", ev.Kind()).Trace("Applying event")
	}

	if err := e.state.Apply(ev); err != nil {
		return err
	}

	tree, err := projection.Project(e.state)
	if err != nil {
		return err
	}
	if len(tree.Dropped) > 0 {
		e.logger.WithField("windows", tree.Dropped).Warn("Dropped windows on workspaces not yet known")
	}

	if e.opts.Dedupe {
		data, err := tree.MarshalJSON()
		if err != nil {
			return err
		}
		if e.last != nil && bytes.Equal(data, e.last) {
			e.logger.Trace("Skipping unchanged tree")
			return nil
		}
		e.last = data
	}

	return e.sink.Emit(tree)
}

// State returns the engine's reconciled model.
func (e *Engine) State() *reconcile.State {
	return e.state
}
