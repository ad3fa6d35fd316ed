package nmap

import (
	"errors"
	"os"
	"os/exec"
)

// Runner puts process handling behind an interface so resolution can be
// exercised without spawning real children.
type Runner interface {
	Command(name string, arg ...string) *exec.Cmd
	Start(cmd *exec.Cmd) error
	Wait(cmd *exec.Cmd) error
	Kill(cmd *exec.Cmd) error
}

type DefaultCommandRunner struct{}

func (dcr DefaultCommandRunner) Command(name string, arg ...string) *exec.Cmd {
	return exec.Command(name, arg...)
}

func (dcr DefaultCommandRunner) Start(cmd *exec.Cmd) error {
	return cmd.Start()
}

func (dcr DefaultCommandRunner) Wait(cmd *exec.Cmd) error {
	return cmd.Wait()
}

// Kill is a no-op for processes that never started or already exited.
func (dcr DefaultCommandRunner) Kill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
