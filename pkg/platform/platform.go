package platform

import (
	"runtime"
	"strings"
)

// Platform identifies the host family the resolver has to deal with.
type Platform int

const (
	Posix Platform = iota
	Windows
)

type capability struct {
	name          string
	lookupCommand string
	normalize     func(string) string
}

var capabilities = map[Platform]capability{
	Posix: {
		name:          "posix",
		lookupCommand: "which",
		normalize:     strings.TrimSpace,
	},
	Windows: {
		name:          "windows",
		lookupCommand: "where",
		normalize: func(out string) string {
			return strings.ReplaceAll(strings.TrimSpace(out), `\`, "/")
		},
	},
}

// Current returns the platform the binary was built for.
func Current() Platform {
	return FromGOOS(runtime.GOOS)
}

func FromGOOS(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Posix
}

// LookupCommand is the native "locate executable" command for the platform.
func (p Platform) LookupCommand() string {
	return p.capability().lookupCommand
}

// Normalize turns raw lookup output into a path.
func (p Platform) Normalize(out string) string {
	return p.capability().normalize(out)
}

func (p Platform) String() string {
	return p.capability().name
}

func (p Platform) capability() capability {
	c, ok := capabilities[p]
	if !ok {
		return capabilities[Posix]
	}
	return c
}
