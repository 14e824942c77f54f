package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"agent-pane/log"
)

const (
	ConfigFileName = "config.json"
	defaultProgram = "codex"
)

// Working directory policies.
const (
	WorkDirCwd      = "cwd"
	WorkDirRepoRoot = "repo-root"
)

// Split directions for the pane the assistant is opened in.
const (
	SplitRight = "right"
	SplitBelow = "below"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".agent-pane"), nil
}

// Config represents the application configuration. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	// Program is the interactive assistant binary to launch.
	Program string `json:"program"`
	// Args are static arguments always passed to the program.
	Args []string `json:"args"`
	// WorkDirPolicy decides the directory the assistant is launched in:
	// "cwd" uses the current working directory, "repo-root" searches upward
	// for the enclosing repository.
	WorkDirPolicy string `json:"workdir_policy"`
	// UseMentionPrefix prefixes file references with "@" so the assistant
	// treats them as file mentions.
	UseMentionPrefix bool `json:"use_mention_prefix"`
	// PromptTemplate is the prompt for a file reference without a range.
	// Recognized placeholder: {file}.
	PromptTemplate string `json:"prompt_template"`
	// PromptTemplateRange is the prompt for a file reference with a line
	// range. Recognized placeholders: {file}, {start}, {end}.
	PromptTemplateRange string `json:"prompt_template_range"`
	// SplitDirection is where the assistant pane is placed ("right" or "below").
	SplitDirection string `json:"split_direction"`
	// SplitPercent is the pane size as a percentage of the window.
	SplitPercent int `json:"split_percent"`
	// SessionPrefix names sessions created by agent-pane so they can be
	// found and cleaned up later.
	SessionPrefix string `json:"session_prefix"`
	// OpenCommandName and SendCommandName are the names of the two
	// user-facing subcommands.
	OpenCommandName string `json:"open_command_name"`
	SendCommandName string `json:"send_command_name"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Program:             defaultProgram,
		Args:                nil,
		WorkDirPolicy:       WorkDirRepoRoot,
		UseMentionPrefix:    true,
		PromptTemplate:      "I'm working on {file}.",
		PromptTemplateRange: "I'm working on {file}. Please focus on lines {start}-{end}.",
		SplitDirection:      SplitRight,
		SplitPercent:        40,
		SessionPrefix:       "agentpane_",
		OpenCommandName:     "open",
		SendCommandName:     "send",
	}
}

// LoadConfig reads the config file and merges it over the defaults:
// user-supplied fields override, omitted fields keep their default value.
// Any load failure degrades to the defaults.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	return mergeConfig(data, configPath)
}

// mergeConfig unmarshals data on top of the default config. Unmarshaling into
// a prefilled struct gives field-wise merge semantics for free.
func mergeConfig(data []byte, configPath string) *Config {
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0o644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}
	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0o644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}

// ResolveProgram attempts to find the configured program in the user's shell.
// It checks in the following order:
//  1. Shell alias resolution: using "which" through the user's shell
//  2. PATH lookup
//
// If both fail, it returns an error.
func ResolveProgram(program string) (string, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/bash" // Default to bash if SHELL is not set
	}

	// Force the shell to load the user's profile and then run the command
	var shellCmd string
	if strings.Contains(shell, "zsh") {
		shellCmd = fmt.Sprintf("source ~/.zshrc &>/dev/null || true; which %s", program)
	} else if strings.Contains(shell, "bash") {
		shellCmd = fmt.Sprintf("source ~/.bashrc &>/dev/null || true; which %s", program)
	} else {
		shellCmd = "which " + program
	}

	cmd := exec.Command(shell, "-c", shellCmd)
	output, err := cmd.Output()
	if err == nil && len(output) > 0 {
		path := strings.TrimSpace(string(output))
		if path != "" {
			// The output may be an alias definition; extract the actual path.
			// Handles formats like "codex: aliased to /path/to/codex".
			aliasRegex := regexp.MustCompile(`(?:aliased to|->|=)\s*([^\s]+)`)
			matches := aliasRegex.FindStringSubmatch(path)
			if len(matches) > 1 {
				path = matches[1]
			}
			return path, nil
		}
	}

	// Otherwise, try to find in PATH directly
	if path, err := exec.LookPath(program); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s command not found in aliases or PATH", program)
}
