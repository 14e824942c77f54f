package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMatchReturnsFirstMatch(t *testing.T) {
	h := newFakeHost()
	desired := BuildLaunch("codex", nil, "")

	_, err := h.Open(BuildLaunch("claude", nil, ""), OpenOptions{})
	require.NoError(t, err)
	first, err := h.Open(desired, OpenOptions{})
	require.NoError(t, err)
	_, err = h.Open(desired, OpenOptions{})
	require.NoError(t, err)

	found, ok := FindMatch(h, desired)
	require.True(t, ok)
	require.Equal(t, first.ID, found.ID)
}

func TestFindMatchIgnoresOtherCommands(t *testing.T) {
	h := newFakeHost()
	_, err := h.Open(BuildLaunch("claude", nil, ""), OpenOptions{})
	require.NoError(t, err)
	_, err = h.Open(BuildLaunch("codex", []string{"--full-auto"}, ""), OpenOptions{})
	require.NoError(t, err)

	_, ok := FindMatch(h, BuildLaunch("codex", nil, ""))
	require.False(t, ok)
}

func TestFindMatchSkipsPanesWithoutCommandMetadata(t *testing.T) {
	h := newFakeHost()
	// A pane running a plain shell has no recorded launch command.
	h.panes = append(h.panes, Pane{ID: "%9", PID: 99})

	_, ok := FindMatch(h, BuildLaunch("codex", nil, ""))
	require.False(t, ok)
}

func TestFindMatchHostError(t *testing.T) {
	h := newFakeHost()
	h.listErr = errHostDown

	_, ok := FindMatch(h, BuildLaunch("codex", nil, ""))
	require.False(t, ok)
}

func TestFindMatchEmptyHost(t *testing.T) {
	h := newFakeHost()
	_, ok := FindMatch(h, BuildLaunch("codex", nil, ""))
	require.False(t, ok)
}
