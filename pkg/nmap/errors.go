package nmap

import (
	"errors"
	"fmt"
)

var (
	ErrNotInstalled       = errors.New("nmap is not installed")
	ErrTimeout            = errors.New("timed out communicating with child process")
	ErrVersionUnavailable = errors.New("nmap version unavailable")
)

// NotInstalledError is returned when the binary could not be found. Path is
// the candidate the caller supplied, possibly empty.
type NotInstalledError struct {
	Path string
}

func (e *NotInstalledError) Error() string {
	if e.Path == "" {
		return "nmap is not installed or could not be found in PATH"
	}
	return fmt.Sprintf("nmap is not installed at %q and could not be found in PATH", e.Path)
}

func (e *NotInstalledError) Is(target error) bool {
	return target == ErrNotInstalled
}
