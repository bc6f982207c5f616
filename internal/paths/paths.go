// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package paths

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/boamaod/nautilus-compare/internal/detect"
)

// FileScheme is the URI scheme of local files.
const FileScheme = "file"

const filePrefix = FileScheme + "://"

// Form selects how an item is handed to an engine.
type Form int

const (
	// FormPath renders items as plain absolute paths.
	FormPath Form = iota
	// FormURI renders items as unescaped URIs.
	FormURI
)

// String returns the form name.
func (f Form) String() string {
	if f == FormURI {
		return "uri"
	}
	return "path"
}

// FormFor returns the form an engine expects.
func FormFor(engine string) Form {
	if detect.IsURICompatible(engine) {
		return FormURI
	}
	return FormPath
}

// InvalidItemError describes an input that cannot be compared.
type InvalidItemError struct {
	Item   string
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item %q: %s", e.Item, e.Reason)
}

// Resolver validates inputs for one two-way engine.
type Resolver struct {
	form  Form
	lstat func(string) (os.FileInfo, error)
}

// NewResolver returns a resolver for the given two-way engine.
func NewResolver(engine string) *Resolver {
	return &Resolver{form: FormFor(engine), lstat: os.Lstat}
}

// Form returns the form of the engine the resolver was built for.
func (r *Resolver) Form() Form { return r.form }

// Resolve validates one input and returns its canonical item: an absolute
// path for local files, the unescaped URI for remote ones.
func (r *Resolver) Resolve(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidItemError{Item: raw, Reason: "empty"}
	}

	scheme, rest, isURI := splitScheme(raw)

	// Remote items cannot be inspected here; they pass only for engines that
	// open URIs themselves.
	if isURI && scheme != FileScheme {
		if r.form != FormURI {
			return "", &InvalidItemError{Item: raw, Reason: "non-local item needs a URI-capable engine"}
		}
		return unescape(raw), nil
	}

	local := raw
	if isURI {
		local = localPath(rest)
	}

	// Step 1: Absolute, cleaned path
	abs, err := filepath.Abs(local)
	if err != nil {
		return "", &InvalidItemError{Item: raw, Reason: err.Error()}
	}
	abs = filepath.Clean(abs)

	// Step 2: Type check without following links
	info, err := r.lstat(abs)
	if err != nil {
		return "", &InvalidItemError{Item: raw, Reason: "not found"}
	}
	if !comparable(info.Mode()) {
		return "", &InvalidItemError{Item: raw, Reason: "unsupported file type " + info.Mode().Type().String()}
	}

	return abs, nil
}

// Render returns item in form f. Local items become file:// URIs or plain
// paths; remote URIs are returned unchanged.
func Render(item string, f Form) string {
	scheme, rest, isURI := splitScheme(item)
	switch {
	case isURI && scheme != FileScheme:
		return item
	case isURI && f == FormPath:
		return localPath(rest)
	case !isURI && f == FormURI:
		return filePrefix + item
	}
	return item
}

// RenderAll renders items for engine.
func RenderAll(items []string, engine string) []string {
	f := FormFor(engine)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = Render(item, f)
	}
	return out
}

// ResolveAll resolves every input, dropping invalid ones. The order of the
// remaining items is kept. The second result lists the rejected inputs.
func (r *Resolver) ResolveAll(raws []string) ([]string, []error) {
	items := make([]string, 0, len(raws))
	var rejected []error
	for _, raw := range raws {
		item, err := r.Resolve(raw)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		items = append(items, item)
	}
	return items, rejected
}

// comparable reports whether a file type can be handed to an engine.
func comparable(mode os.FileMode) bool {
	return mode.IsDir() || mode.IsRegular() || mode&os.ModeSymlink != 0
}

// splitScheme splits "scheme://rest". Windows drive letters and plain paths
// are not URIs.
func splitScheme(raw string) (scheme, rest string, ok bool) {
	i := strings.Index(raw, "://")
	if i <= 1 {
		return "", "", false
	}
	scheme = raw[:i]
	for _, c := range scheme {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return "", "", false
		}
	}
	return strings.ToLower(scheme), raw[i+3:], true
}

// localPath turns the part after "file://" into a path. An optional host
// ("localhost") is dropped.
func localPath(rest string) string {
	if !strings.HasPrefix(rest, "/") {
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[i:]
		}
	}
	return unescape(rest)
}

func unescape(s string) string {
	u, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return u
}

// IsLocal reports whether an item refers to a local file.
func IsLocal(item string) bool {
	scheme, _, ok := splitScheme(item)
	return !ok || scheme == FileScheme
}
