package privilege_test

import (
	"os"
	"runtime"
	"testing"

	"github.com/IgorEulalio/nmap-preflight/pkg/privilege"
	"github.com/stretchr/testify/assert"
)

func TestCheckerFunc(t *testing.T) {
	assert.True(t, privilege.CheckerFunc(func() bool { return true }).IsPrivileged())
	assert.False(t, privilege.CheckerFunc(func() bool { return false }).IsPrivileged())
}

func TestSystemMatchesUID(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping: uid based check does not apply on windows")
	}
	assert.Equal(t, os.Getuid() == 0, privilege.System.IsPrivileged())
}
