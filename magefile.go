//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "speakabc"
	mainPkg    = "./cmd/speakabc"
)

// Default target to run when none is specified
var Default = Build

// Build compiles the speakabc binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, mainPkg)
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and copies the binary to ~/go/bin
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	dest := filepath.Join(home, "go", "bin", binaryName)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	fmt.Println("Installing to", dest)
	return sh.Copy(dest, binaryName)
}

// Clean removes the binary and the speech cache
func Clean() error {
	if err := sh.Rm(binaryName); err != nil {
		return err
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return sh.Rm(filepath.Join(dir, binaryName))
	}
	return nil
}
