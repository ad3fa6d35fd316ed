//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "nmap-preflight"

// Local builds a static linux binary.
func (Build) Local() error {
	fmt.Println("Building the Go application locally...")

	env := map[string]string{
		"CGO_ENABLED": "0",
		"GOOS":        "linux",
		"GOARCH":      "amd64",
	}

	if err := sh.RunWithV(env, "go", "build", "-ldflags=-s -w -extldflags='-static'", "-a", "-installsuffix", "cgo", "-o", binaryName, "main.go"); err != nil {
		return fmt.Errorf("failed to build the application: %w", err)
	}

	fmt.Println("Build completed successfully.")
	return nil
}

// Windows cross-compiles the binary for windows/amd64.
func (Build) Windows() error {
	env := map[string]string{
		"CGO_ENABLED": "0",
		"GOOS":        "windows",
		"GOARCH":      "amd64",
	}
	return sh.RunWithV(env, "go", "build", "-o", binaryName+".exe", "main.go")
}

// Unit runs the unit tests.
func (Test) Unit() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the unit tests with the race detector.
func (Test) Race() error {
	mg.Deps(Test.Unit)
	return sh.RunV("go", "test", "-race", "./...")
}

type Build mg.Namespace

type Test mg.Namespace
