// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - Line-protocol server for file-manager integration.
//
// Command: serve
//
// One JSON request per line on stdin, one JSON response per line on
// stdout. The session lives as long as the process, the way it lives as
// long as the file manager for an extension; the config file is watched
// and reloaded when it changes.
//
// Requests:
//   {"op":"items","files":["/a","/b"]}
//   {"op":"activate","name":"NautilusCompareExtension::CompareWithin","files":["/a","/b"]}
//   {"op":"session"}
//   {"op":"forget"}
//
// An optional "id" is echoed back.

package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/provider"
	"github.com/boamaod/nautilus-compare/internal/selection"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// maxRequestSize bounds one request line.
const maxRequestSize = 1 << 20

// Server operations.
const (
	OpItems    = "items"
	OpActivate = "activate"
	OpSession  = "session"
	OpForget   = "forget"
)

// ServeRequest is one line of input.
type ServeRequest struct {
	ID    json.RawMessage `json:"id,omitempty"`
	Op    string          `json:"op"`
	Name  string          `json:"name,omitempty"`
	Files []string        `json:"files,omitempty"`
}

// ServeResponse is one line of output.
type ServeResponse struct {
	ID      json.RawMessage    `json:"id,omitempty"`
	OK      bool               `json:"ok"`
	Items   []selection.Action `json:"items,omitempty"`
	Result  *provider.Result   `json:"result,omitempty"`
	Session *session.Status    `json:"session,omitempty"`
	Error   string             `json:"error,omitempty"`
	Code    int                `json:"code,omitempty"`
}

// HandleServe handles the "serve" command. It returns when stdin reaches
// EOF or ctx is cancelled.
func (a *App) HandleServe(ctx context.Context, args Args) error {
	store, err := a.configStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := store.Watch(ctx, func(cfg config.Config) {
		a.Logger.Info("engines reloaded",
			"two_way", cfg.Engines.TwoWay,
			"three_way", cfg.Engines.ThreeWay,
			"multi_way", cfg.Engines.Multi)
	}); err != nil {
		a.Logger.Warn("config watch unavailable", "error", err)
	}

	opts := []provider.Option{
		provider.WithEvaluator(a.evaluator()),
		provider.WithLauncher(a.launcher()),
		provider.WithLogger(a.Logger),
	}
	if h, err := a.openHistory(); err != nil {
		a.Logger.Warn("history unavailable", "error", err)
	} else {
		defer h.Close()
		opts = append(opts, provider.WithRecorder(h))
	}
	p := provider.New(store, session.New(), opts...)

	a.Logger.Info("serving", "config", store.UserPath())
	return a.serveLoop(ctx, p, a.Stdin, a.Stdout)
}

// errRequestTooLong marks a request line over maxRequestSize.
var errRequestTooLong = errors.New("request exceeds 1 MiB")

// requestLine is one line read from the input, or the error that ended it.
type requestLine struct {
	data []byte
	err  error
}

func (a *App) serveLoop(ctx context.Context, p *provider.Provider, in io.Reader, out io.Writer) error {
	lines := readRequests(ctx, in)
	encoder := json.NewEncoder(out)

	for {
		if ctx.Err() != nil {
			return nil
		}

		var line requestLine
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
			if !ok {
				return nil
			}
		}

		var resp ServeResponse
		switch {
		case errors.Is(line.err, errRequestTooLong):
			resp = errorResponse(nil, NewValidationError("request", "", errRequestTooLong.Error()))
		case line.err != nil:
			return fmt.Errorf("failed to read request: %w", line.err)
		default:
			var req ServeRequest
			if err := json.Unmarshal(line.data, &req); err != nil {
				resp = errorResponse(nil, NewValidationError("request", "", "malformed JSON"))
			} else {
				resp = a.handleRequest(ctx, p, req)
			}
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

// readRequests reads non-empty lines from in until EOF, a read error or
// ctx cancellation. A blocked read does not hold up the caller.
func readRequests(ctx context.Context, in io.Reader) <-chan requestLine {
	ch := make(chan requestLine)
	go func() {
		defer close(ch)
		r := bufio.NewReaderSize(in, 64*1024)
		for {
			data, err := readLine(r, maxRequestSize)
			var send *requestLine
			switch {
			case errors.Is(err, errRequestTooLong):
				send = &requestLine{err: err}
			case len(data) > 0:
				send = &requestLine{data: data}
			}
			if send != nil {
				select {
				case ch <- *send:
				case <-ctx.Done():
					return
				}
			}

			if err == nil || errors.Is(err, errRequestTooLong) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				select {
				case ch <- requestLine{err: err}:
				case <-ctx.Done():
				}
			}
			return
		}
	}()
	return ch
}

// readLine returns the next line without its terminator. A line longer
// than max is consumed and reported as errRequestTooLong.
func readLine(r *bufio.Reader, max int) ([]byte, error) {
	var buf []byte
	tooLong := false
	for {
		frag, err := r.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, frag...)
			if len(bytes.TrimRight(buf, "\r\n")) > max {
				tooLong, buf = true, nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if tooLong {
			return nil, errRequestTooLong
		}
		return bytes.TrimRight(buf, "\r\n"), err
	}
}

func (a *App) handleRequest(ctx context.Context, p *provider.Provider, req ServeRequest) ServeResponse {
	a.Logger.Debug("request", "op", req.Op, "files", len(req.Files))

	switch req.Op {
	case OpItems:
		return ServeResponse{ID: req.ID, OK: true, Items: p.Items(req.Files)}

	case OpActivate:
		res, err := p.Run(ctx, req.Name, req.Files)
		if err != nil {
			return errorResponse(req.ID, err)
		}
		return ServeResponse{ID: req.ID, OK: true, Result: &res}

	case OpSession:
		st := p.Session().GetStatus()
		return ServeResponse{ID: req.ID, OK: true, Session: &st}

	case OpForget:
		if err := p.Forget(); err != nil {
			return errorResponse(req.ID, err)
		}
		st := p.Session().GetStatus()
		return ServeResponse{ID: req.ID, OK: true, Session: &st}
	}
	return errorResponse(req.ID, NewValidationErrorWithExample("op", req.Op, "unknown operation",
		"items, activate, session, forget"))
}

func errorResponse(id json.RawMessage, err error) ServeResponse {
	return ServeResponse{ID: id, Error: err.Error(), Code: GetExitCode(err)}
}
