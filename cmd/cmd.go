// Package cmd wraps exec.Cmd execution behind an interface so that code
// shelling out to external binaries can be tested with a mock.
package cmd

import "os/exec"

// Executor runs external commands.
type Executor interface {
	Run(cmd *exec.Cmd) error
	Output(cmd *exec.Cmd) ([]byte, error)
}

type realExecutor struct{}

func (e realExecutor) Run(cmd *exec.Cmd) error {
	return cmd.Run()
}

func (e realExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	return cmd.Output()
}

// MakeExecutor returns an Executor backed by the real exec package.
func MakeExecutor() Executor {
	return realExecutor{}
}
