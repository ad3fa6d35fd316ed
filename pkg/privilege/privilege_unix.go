//go:build !windows

package privilege

import "os"

func isPrivileged() bool {
	return os.Getuid() == 0
}
