// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/history"
	"github.com/boamaod/nautilus-compare/internal/launch"
	"github.com/boamaod/nautilus-compare/internal/selection"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// MockLauncher implements launch.Launcher for testing
type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) Launch(ctx context.Context, engine string, args []string) error {
	return m.Called(ctx, engine, args).Error(0)
}

// MockRecorder implements Recorder for testing
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e history.Entry) (history.Entry, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(history.Entry), args.Error(1)
}

type staticEngines config.Engines

func (s staticEngines) Engines() config.Engines { return config.Engines(s) }

type saverFunc func(*session.Session) error

func (f saverFunc) Save(s *session.Session) error { return f(s) }

func files(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(out[i], []byte(n), 0644))
	}
	return out
}

var (
	pathEngines = staticEngines{TwoWay: "kdiff3"}
	allEngines  = staticEngines{TwoWay: "kdiff3", ThreeWay: "kdiff3", Multi: "diffuse"}
)

// =============================================================================
// ITEMS
// =============================================================================

func TestItems_TwoFiles(t *testing.T) {
	f := files(t, "a.txt", "b.txt")
	p := New(pathEngines, session.New(), WithLauncher(new(MockLauncher)))

	got := p.Items(f)
	require.Len(t, got, 1)
	assert.Equal(t, selection.KindCompareWithin, got[0].Kind)
	assert.Equal(t, f, got[0].Args)
}

func TestItems_DropsInvalidInputs(t *testing.T) {
	f := files(t, "a.txt")
	missing := filepath.Join(filepath.Dir(f[0]), "missing.txt")
	p := New(pathEngines, session.New(), WithLauncher(new(MockLauncher)))

	got := p.Items([]string{f[0], missing})
	require.Len(t, got, 1)
	assert.Equal(t, selection.KindRemember, got[0].Kind)

	assert.Empty(t, p.Items([]string{missing}))
	assert.Empty(t, p.Items(nil))
}

func TestItems_FileURIsMatchRememberedPaths(t *testing.T) {
	f := files(t, "a.txt")
	sess := session.New()
	sess.Remember(f[0])
	p := New(staticEngines{TwoWay: "meld"}, sess, WithLauncher(new(MockLauncher)))

	got := p.Items([]string{"file://" + f[0]})
	require.Len(t, got, 1)
	assert.Equal(t, selection.KindRemember, got[0].Kind)
}

// =============================================================================
// ACTIVATE
// =============================================================================

func TestRun_RememberThenCompareTo(t *testing.T) {
	ctx := context.Background()
	f := files(t, "a.txt", "c.txt")
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, "kdiff3", []string{f[0], f[1]}).Return(nil).Once()

	var saved []string
	saver := saverFunc(func(s *session.Session) error {
		item, _ := s.Remembered()
		saved = append(saved, item)
		return nil
	})

	p := New(pathEngines, session.New(), WithLauncher(launcher), WithSessionSaver(saver))

	res, err := p.Run(ctx, "compare-later", f[:1])
	require.NoError(t, err)
	assert.Equal(t, selection.KindRemember, res.Action)
	assert.Equal(t, f[0], res.Remembered)
	assert.Equal(t, []string{f[0]}, saved)

	items := p.Items(f[1:])
	require.Len(t, items, 2)
	assert.Equal(t, selection.KindCompareTo, items[0].Kind)

	res, err = p.Run(ctx, "NautilusCompareExtension::CompareTo", f[1:])
	require.NoError(t, err)
	assert.Equal(t, "kdiff3", res.Engine)
	assert.Equal(t, []string{f[0], f[1]}, res.Args)

	// The remembered item survives a comparison.
	rem, ok := p.Session().Remembered()
	assert.True(t, ok)
	assert.Equal(t, f[0], rem)

	launcher.AssertExpectations(t)
}

func TestActivate_EnginePerArity(t *testing.T) {
	ctx := context.Background()
	f := files(t, "1", "2", "3", "4")
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, "kdiff3", f[:2]).Return(nil).Once()
	launcher.On("Launch", mock.Anything, "kdiff3", f[:3]).Return(nil).Once()
	launcher.On("Launch", mock.Anything, "diffuse", f).Return(nil).Once()

	p := New(allEngines, session.New(), WithLauncher(launcher))
	for _, n := range []int{2, 3, 4} {
		_, err := p.Run(ctx, "compare", f[:n])
		require.NoError(t, err, "n=%d", n)
	}
	launcher.AssertExpectations(t)
}

func TestActivate_RendersURIsForURIEngines(t *testing.T) {
	ctx := context.Background()
	f := files(t, "a b.txt", "c.txt")
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, "meld", []string{"file://" + f[0], "file://" + f[1]}).Return(nil).Once()

	p := New(staticEngines{TwoWay: "meld"}, session.New(), WithLauncher(launcher))
	_, err := p.Run(ctx, "compare", f)
	require.NoError(t, err)
	launcher.AssertExpectations(t)
}

func TestActivate_EmptyTwoWayFallsBackToDefault(t *testing.T) {
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, "meld", []string{"file:///a", "file:///b"}).Return(nil).Once()

	p := New(staticEngines{}, session.New(), WithLauncher(launcher))
	res, err := p.Activate(context.Background(), selection.Action{Kind: selection.KindCompareWithin, Args: []string{"/a", "/b"}})
	require.NoError(t, err)
	assert.Equal(t, "meld", res.Engine)
	launcher.AssertExpectations(t)
}

func TestActivate_NoEngineForCount(t *testing.T) {
	launcher := new(MockLauncher)
	p := New(pathEngines, session.New(), WithLauncher(launcher))

	_, err := p.Activate(context.Background(), selection.Action{Kind: selection.KindCompareWithin, Args: []string{"/a", "/b", "/c"}})
	assert.ErrorIs(t, err, launch.ErrNoEngine)
	launcher.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivate_NoArgs(t *testing.T) {
	p := New(pathEngines, session.New(), WithLauncher(new(MockLauncher)))
	_, err := p.Activate(context.Background(), selection.Action{})
	assert.ErrorIs(t, err, ErrNotOffered)
}

func TestRun_NotOffered(t *testing.T) {
	f := files(t, "1", "2", "3", "4")
	launcher := new(MockLauncher)
	p := New(pathEngines, session.New(), WithLauncher(launcher))

	_, err := p.Run(context.Background(), "compare", f)
	assert.ErrorIs(t, err, ErrNotOffered)

	_, err = p.Run(context.Background(), "compare-to", f[:1])
	assert.ErrorIs(t, err, ErrNotOffered)

	_, err = p.Run(context.Background(), "bogus", f[:1])
	assert.ErrorIs(t, err, selection.ErrUnknownAction)

	launcher.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivate_LaunchFailure(t *testing.T) {
	boom := errors.New("boom")
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, "kdiff3", mock.Anything).Return(boom)
	recorder := new(MockRecorder)

	p := New(pathEngines, session.New(), WithLauncher(launcher), WithRecorder(recorder))
	_, err := p.Activate(context.Background(), selection.Action{Kind: selection.KindCompareWithin, Args: []string{"/a", "/b"}})
	assert.ErrorIs(t, err, boom)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestActivate_RecordsHistory(t *testing.T) {
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, "kdiff3", []string{"/a", "/b"}).Return(nil)

	sess := session.New()
	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(e history.Entry) bool {
		return e.Action == "compare" && e.Engine == "kdiff3" && e.SessionID == sess.ID() && len(e.Args) == 2
	})).Return(history.Entry{ID: 1}, nil).Once()

	p := New(pathEngines, sess, WithLauncher(launcher), WithRecorder(recorder))
	_, err := p.Activate(context.Background(), selection.Action{Kind: selection.KindCompareWithin, Args: []string{"/a", "/b"}})
	require.NoError(t, err)
	recorder.AssertExpectations(t)
}

func TestActivate_RecorderErrorIsNotFatal(t *testing.T) {
	launcher := new(MockLauncher)
	launcher.On("Launch", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	recorder := new(MockRecorder)
	recorder.On("Record", mock.Anything, mock.Anything).Return(history.Entry{}, history.ErrClosed)

	p := New(pathEngines, session.New(), WithLauncher(launcher), WithRecorder(recorder))
	_, err := p.Activate(context.Background(), selection.Action{Kind: selection.KindCompareWithin, Args: []string{"/a", "/b"}})
	assert.NoError(t, err)
}

func TestRemember_SaveError(t *testing.T) {
	boom := errors.New("disk full")
	p := New(pathEngines, session.New(),
		WithLauncher(new(MockLauncher)),
		WithSessionSaver(saverFunc(func(*session.Session) error { return boom })))

	_, err := p.Activate(context.Background(), selection.Action{Kind: selection.KindRemember, Args: []string{"/a"}})
	assert.ErrorIs(t, err, boom)
}

func TestForget(t *testing.T) {
	sess := session.New()
	sess.Remember("/a")
	saves := 0
	p := New(pathEngines, sess,
		WithLauncher(new(MockLauncher)),
		WithSessionSaver(saverFunc(func(*session.Session) error { saves++; return nil })))

	require.NoError(t, p.Forget())
	_, ok := sess.Remembered()
	assert.False(t, ok)
	assert.Equal(t, 1, saves)
}

func TestWithHistoryStore(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(filepath.Join(t.TempDir(), history.FileName))
	require.NoError(t, err)
	defer store.Close()

	p := New(pathEngines, session.New(), WithLauncher(launch.DryRun{Out: new(discard)}), WithRecorder(store))
	_, err = p.Activate(ctx, selection.Action{Kind: selection.KindCompareWithin, Args: []string{"/a", "/b"}})
	require.NoError(t, err)

	entries, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kdiff3", entries[0].Engine)
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
