// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// output.go - Machine-readable output for all commands.
//
// Every command produces one data value. In text mode a command-specific
// function renders it; in json and yaml mode the value is wrapped in a
// standard envelope so scripts can rely on one shape.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

var supportedFormats = []string{FormatText, FormatJSON, FormatYAML}

// JSONResponse is the envelope for json and yaml output.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success" yaml:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data" yaml:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error" yaml:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

// NewJSONResponse creates a new successful response.
func NewJSONResponse(command string, data interface{}, now time.Time) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: now.UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Output writes data for command in the format selected by args. textFn
// renders text mode and may be nil when there is nothing to print.
func (a *App) Output(args Args, command string, data interface{}, textFn func(w io.Writer)) error {
	switch format := args.OutputFormat(); format {
	case FormatText:
		if textFn != nil {
			textFn(a.Stdout)
		}
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(a.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(NewJSONResponse(command, data, a.now()))
	case FormatYAML:
		encoder := yaml.NewEncoder(a.Stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewJSONResponse(command, data, a.now())); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		return ErrUnsupportedFormat(format, supportedFormats)
	}
}

// checkFormat validates the output format before a command does any work.
func checkFormat(args Args, extra ...string) error {
	format := args.OutputFormat()
	allowed := append(slices.Clone(supportedFormats), extra...)
	if slices.Contains(allowed, format) {
		return nil
	}
	return ErrUnsupportedFormat(format, allowed)
}
