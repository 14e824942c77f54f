package config

import (
	"testing"

	"agent-pane/log"

	"github.com/stretchr/testify/require"
)

func init() {
	log.Initialize()
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "codex", cfg.Program)
	require.Empty(t, cfg.Args)
	require.Equal(t, WorkDirRepoRoot, cfg.WorkDirPolicy)
	require.True(t, cfg.UseMentionPrefix)
	require.Equal(t, "open", cfg.OpenCommandName)
	require.Equal(t, "send", cfg.SendCommandName)
	require.Equal(t, "agentpane_", cfg.SessionPrefix)
}

func TestMergeConfigOverridesSuppliedFields(t *testing.T) {
	data := []byte(`{"program": "claude", "args": ["--continue"], "split_percent": 50}`)

	cfg := mergeConfig(data, "test-config.json")
	require.Equal(t, "claude", cfg.Program)
	require.Equal(t, []string{"--continue"}, cfg.Args)
	require.Equal(t, 50, cfg.SplitPercent)
}

func TestMergeConfigKeepsDefaultsForOmittedFields(t *testing.T) {
	data := []byte(`{"program": "claude"}`)

	cfg := mergeConfig(data, "test-config.json")
	require.Equal(t, "claude", cfg.Program)

	defaults := DefaultConfig()
	require.Equal(t, defaults.WorkDirPolicy, cfg.WorkDirPolicy)
	require.Equal(t, defaults.PromptTemplate, cfg.PromptTemplate)
	require.Equal(t, defaults.PromptTemplateRange, cfg.PromptTemplateRange)
	require.Equal(t, defaults.UseMentionPrefix, cfg.UseMentionPrefix)
	require.Equal(t, defaults.SplitDirection, cfg.SplitDirection)
	require.Equal(t, defaults.SplitPercent, cfg.SplitPercent)
}

func TestMergeConfigCanDisableMentionPrefix(t *testing.T) {
	data := []byte(`{"use_mention_prefix": false}`)

	cfg := mergeConfig(data, "test-config.json")
	require.False(t, cfg.UseMentionPrefix)
}

func TestMergeConfigInvalidJSONFallsBackToDefaults(t *testing.T) {
	data := []byte(`{"program": `)

	cfg := mergeConfig(data, t.TempDir()+"/config.json")
	require.Equal(t, DefaultConfig(), cfg)
}
