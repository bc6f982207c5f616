// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes.
//
// Handlers return errors and never print them. main prints the error once,
// as text or JSON, and exits with the code GetExitCode picks.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/launch"
	"github.com/boamaod/nautilus-compare/internal/provider"
	"github.com/boamaod/nautilus-compare/internal/selection"
)

// Exit codes.
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2 // bad arguments, unknown command or action
	ExitConfigError   = 3 // unusable config file or location
	ExitNotOffered    = 4 // the action is not valid for the selection
	ExitLaunchError   = 5 // the engine could not be started
	ExitNotFoundError = 7
)

// CommandError is a failed step of a command.
type CommandError struct {
	Command string // e.g. "config"
	Action  string // e.g. "set"
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := e.Command + " " + e.Action + " failed: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ValidationError is bad user input.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (got: %s)", e.Value)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "\nExample: %s", e.Example)
	}
	return b.String()
}

// NotFoundError is a missing named resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found: " + e.ID
}

// NewCommandError returns a *CommandError.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewValidationError returns a *ValidationError without an example.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NewValidationErrorWithExample returns a *ValidationError showing a valid
// invocation.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Example: example}
}

// NewNotFoundError returns a *NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ErrMissingArgument reports a required argument that was not given.
func ErrMissingArgument(name, usage string) error {
	return NewValidationErrorWithExample(name, "", "required argument missing", usage)
}

// ErrUnsupportedFormat reports an output format the command cannot produce.
func ErrUnsupportedFormat(format string, supported []string) error {
	return NewValidationErrorWithExample("format", format, "unsupported format",
		"supported formats: "+strings.Join(supported, ", "))
}

// GetExitCode maps err to an exit code.
func GetExitCode(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		tty        *TTYRequiredError
		badConfig  config.ValidationError
		launchErr  *launch.LaunchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &validation), errors.As(err, &tty), errors.Is(err, selection.ErrUnknownAction):
		return ExitUsageError
	case errors.As(err, &notFound):
		return ExitNotFoundError
	case errors.As(err, &badConfig), errors.Is(err, config.ErrNoUserConfigDir):
		return ExitConfigError
	case errors.Is(err, provider.ErrNotOffered), errors.Is(err, launch.ErrNoEngine):
		return ExitNotOffered
	case errors.As(err, &launchErr), errors.Is(err, exec.ErrNotFound):
		return ExitLaunchError
	}
	return ExitGeneralError
}

// DisplayError writes err to w, as a JSON object when jsonMode is set.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if !jsonMode {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
		return
	}

	out := map[string]interface{}{
		"success":    false,
		"error":      err.Error(),
		"exit_code":  GetExitCode(err),
		"error_type": "generic_error",
	}
	var (
		validation *ValidationError
		notFound   *NotFoundError
		cmdErr     *CommandError
	)
	switch {
	case errors.As(err, &validation):
		out["error_type"] = "validation_error"
		out["field"] = validation.Field
		out["value"] = validation.Value
		out["reason"] = validation.Reason
		if validation.Example != "" {
			out["example"] = validation.Example
		}
	case errors.As(err, &notFound):
		out["error_type"] = "not_found_error"
		out["resource"] = notFound.Resource
		out["id"] = notFound.ID
	case errors.As(err, &cmdErr):
		out["error_type"] = "command_error"
		out["command"] = cmdErr.Command
		out["action"] = cmdErr.Action
		out["reason"] = cmdErr.Reason
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
