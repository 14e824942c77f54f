package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"agent-pane/app"
	"agent-pane/cli"
	cmdexec "agent-pane/cmd"
	"agent-pane/config"
	"agent-pane/log"
	"agent-pane/notify"
	"agent-pane/session"
	"agent-pane/session/tmux"
	"agent-pane/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var version = "0.4.2"

// terminalHost returns the tmux host when tmux is installed, nil otherwise.
// A nil host makes the session manager fall back to a raw pty spawn.
func terminalHost() session.Host {
	if tmux.IsAvailable() {
		return tmux.NewHost()
	}
	return nil
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var programFlag string

	rootCmd := &cobra.Command{
		Use:           "agent-pane",
		Short:         "Open your AI coding assistant in a terminal pane, seeded with the file you're editing.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&programFlag, "program", "p", "",
		"Assistant program to launch (overrides config, e.g. 'claude' or 'aider --model gpt-4o')")

	applyFlags := func() {
		if programFlag != "" {
			parsed := session.ParseCommand(programFlag)
			cfg.Program = parsed.Program()
			if argv := parsed.Argv(); len(argv) > 1 {
				cfg.Args = argv[1:]
			}
		}
	}

	openCmd := &cobra.Command{
		Use:   cfg.OpenCommandName,
		Short: "Open or reuse an assistant session",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			return app.New(cfg, terminalHost(), nil).Open()
		},
	}

	var fromFlag, toFlag int
	sendCmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <file>", cfg.SendCommandName),
		Short: "Open or reuse a session and send it a reference to <file>",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return app.New(cfg, terminalHost(), nil).Send(file, fromFlag, toFlag)
		},
	}
	sendCmd.Flags().IntVar(&fromFlag, "from", 0, "First line of the selection (1-based)")
	sendCmd.Flags().IntVar(&toFlag, "to", 0, "Last line of the selection (1-based)")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Pick one of the open assistant sessions and bring it to the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			host := terminalHost()
			if host == nil {
				notify.Errorf("tmux is not available; there are no sessions to list")
				return nil
			}

			panes, err := host.List()
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			var matching []session.Pane
			for _, p := range panes {
				if launch, ok := host.CommandFor(p); ok && launch.Program() == cfg.Program {
					matching = append(matching, p)
				}
			}

			picker := ui.NewPicker(host, matching)
			if _, err := tea.NewProgram(picker).Run(); err != nil {
				return fmt.Errorf("failed to run session picker: %w", err)
			}
			return picker.Err()
		},
	}

	killCmd := &cobra.Command{
		Use:   "kill",
		Short: "Kill all sessions created by agent-pane",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tmux.CleanupSessions(cfg.SessionPrefix, cmdexec.MakeExecutor()); err != nil {
				return fmt.Errorf("failed to cleanup tmux sessions: %w", err)
			}
			fmt.Println("Sessions have been cleaned up")
			return nil
		},
	}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the assistant and terminal host are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags()
			results := cli.CheckAll(cli.Prerequisites(cfg.Program))
			fmt.Print(cli.FormatCheckResults(results))

			if path, err := config.ResolveProgram(cfg.Program); err == nil {
				fmt.Printf("\n%s resolves to %s\n", cfg.Program, path)
			}
			return nil
		},
	}

	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Log: %s\n", log.Path())
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of agent-pane",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agent-pane version %s\n", version)
		},
	}

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func main() {
	log.Initialize()
	defer log.Close()

	// Command names come from config, so it loads before the CLI is built.
	cfg := config.LoadConfig()

	if err := newRootCmd(cfg).Execute(); err != nil {
		// Flow-aborting errors were already reported as notifications.
		if !errors.Is(err, session.ErrMissingExecutable) && !errors.Is(err, app.ErrNoFile) {
			fmt.Fprintln(os.Stderr, err)
		}
		log.Close()
		os.Exit(1)
	}
}
