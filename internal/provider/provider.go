// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider builds the compare menu for a file selection and runs
// the chosen action. It ties the engine configuration, the session, the
// selection evaluator and the launcher together the way a file-manager
// extension does.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/history"
	"github.com/boamaod/nautilus-compare/internal/launch"
	"github.com/boamaod/nautilus-compare/internal/logging"
	"github.com/boamaod/nautilus-compare/internal/paths"
	"github.com/boamaod/nautilus-compare/internal/selection"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// ErrNotOffered is returned when an action is not valid for a selection.
var ErrNotOffered = errors.New("action not offered for this selection")

// EngineSource supplies the current engine slots. *config.Store implements it.
type EngineSource interface {
	Engines() config.Engines
}

// SessionSaver persists the session after it changes.
type SessionSaver interface {
	Save(*session.Session) error
}

// Recorder stores launched comparisons.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Result describes what an activated action did.
type Result struct {
	Action     selection.Kind `json:"action" yaml:"action"`
	Remembered string         `json:"remembered,omitempty" yaml:"remembered,omitempty"`
	Engine     string         `json:"engine,omitempty" yaml:"engine,omitempty"`
	Args       []string       `json:"args,omitempty" yaml:"args,omitempty"`
}

// Provider computes menu actions and activates them.
type Provider struct {
	engines   EngineSource
	session   *session.Session
	evaluator *selection.Evaluator
	launcher  launch.Launcher
	saver     SessionSaver
	recorder  Recorder
	logger    logging.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithEvaluator sets the evaluator, for example one with localized labels.
func WithEvaluator(e *selection.Evaluator) Option {
	return func(p *Provider) { p.evaluator = e }
}

// WithLauncher replaces the process launcher.
func WithLauncher(l launch.Launcher) Option {
	return func(p *Provider) { p.launcher = l }
}

// WithSessionSaver persists the session whenever an item is remembered.
func WithSessionSaver(s SessionSaver) Option {
	return func(p *Provider) { p.saver = s }
}

// WithRecorder records every launch.
func WithRecorder(r Recorder) Option {
	return func(p *Provider) { p.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// New returns a provider over engines and sess. The caller owns sess and
// may share it between providers.
func New(engines EngineSource, sess *session.Session, opts ...Option) *Provider {
	if sess == nil {
		sess = session.New()
	}
	p := &Provider{
		engines:   engines,
		session:   sess,
		evaluator: selection.NewEvaluator("en"),
		logger:    logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.launcher == nil {
		p.launcher = launch.NewExecLauncher(p.logger)
	}
	return p
}

// Session returns the session the provider reads and updates.
func (p *Provider) Session() *session.Session { return p.session }

// Engines returns the current engine slots.
func (p *Provider) Engines() config.Engines { return p.engines.Engines() }

// Items returns the menu actions for raw inputs. Inputs that are not
// comparable are dropped; when none remain there are no actions.
func (p *Provider) Items(raw []string) []selection.Action {
	engines := p.engines.Engines()
	items, rejected := paths.NewResolver(engines.TwoWay).ResolveAll(raw)
	for _, err := range rejected {
		p.logger.Debug("item skipped", "error", err)
	}
	if len(items) == 0 {
		return nil
	}
	return p.evaluator.Evaluate(items, p.session, engines)
}

// Find returns the action of kind k offered for raw inputs.
func (p *Provider) Find(k selection.Kind, raw []string) (selection.Action, error) {
	a, ok := selection.Find(p.Items(raw), k)
	if !ok {
		return selection.Action{}, fmt.Errorf("%w: %s", ErrNotOffered, k)
	}
	return a, nil
}

// Run finds the named action for raw inputs and activates it. name is a
// CLI name ("compare-to") or a menu item name.
func (p *Provider) Run(ctx context.Context, name string, raw []string) (Result, error) {
	k, err := selection.ParseKind(name)
	if err != nil {
		return Result{}, err
	}
	a, err := p.Find(k, raw)
	if err != nil {
		return Result{}, err
	}
	return p.Activate(ctx, a)
}

// Activate performs an action. A single argument is remembered in the
// session. Two or more arguments are handed to the engine configured for
// that count, rendered in the form the engine expects.
func (p *Provider) Activate(ctx context.Context, a selection.Action) (Result, error) {
	switch len(a.Args) {
	case 0:
		return Result{}, fmt.Errorf("%w: no items", ErrNotOffered)
	case 1:
		return p.remember(a)
	}

	engine, ok := selection.EngineFor(p.engines.Engines(), len(a.Args))
	if !ok {
		return Result{}, fmt.Errorf("%w for %d items", launch.ErrNoEngine, len(a.Args))
	}
	args := paths.RenderAll(a.Args, engine)

	if err := p.launcher.Launch(ctx, engine, args); err != nil {
		return Result{}, err
	}
	p.logger.Debug("comparison launched", "action", a.Kind.String(), "engine", engine, "items", len(args))

	if p.recorder != nil {
		if _, err := p.recorder.Record(ctx, history.Entry{
			Action:    a.Kind.String(),
			Engine:    engine,
			Args:      args,
			SessionID: p.session.ID(),
		}); err != nil {
			p.logger.Warn("failed to record launch", "error", err)
		}
	}

	return Result{Action: a.Kind, Engine: engine, Args: args}, nil
}

func (p *Provider) remember(a selection.Action) (Result, error) {
	item := a.Args[0]
	p.session.Remember(item)
	p.logger.Debug("item remembered", "item", item)

	if p.saver != nil {
		if err := p.saver.Save(p.session); err != nil {
			return Result{}, err
		}
	}
	return Result{Action: selection.KindRemember, Remembered: item}, nil
}

// Forget drops the remembered item and persists the session.
func (p *Provider) Forget() error {
	p.session.Forget()
	p.logger.Debug("session cleared")
	if p.saver != nil {
		return p.saver.Save(p.session)
	}
	return nil
}
