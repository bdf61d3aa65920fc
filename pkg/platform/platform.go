// Package platform models the target platform of a build as a value with
// explicit capability accessors. All path derivation that depends on the
// operating-system family (executable suffix, bin/ nesting) goes through
// this package instead of branching on platform strings at the call site.
package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform identifies a build target by its package subdirectory name
// (e.g. "linux-64", "osx-arm64", "win-64", "noarch").
type Platform struct {
	subdir string
}

// FromSubdir builds a Platform from a package subdirectory identifier.
func FromSubdir(subdir string) Platform {
	return Platform{subdir: subdir}
}

// Detect returns the Platform for the running process.
func Detect() Platform {
	var osName string
	switch runtime.GOOS {
	case "darwin":
		osName = "osx"
	case "windows":
		osName = "win"
	default:
		osName = runtime.GOOS
	}

	var arch string
	switch runtime.GOARCH {
	case "amd64":
		arch = "64"
	case "386":
		arch = "32"
	case "arm64":
		arch = "arm64"
	default:
		arch = runtime.GOARCH
	}

	return Platform{subdir: fmt.Sprintf("%s-%s", osName, arch)}
}

// Subdir returns the package subdirectory identifier.
func (p Platform) Subdir() string {
	return p.subdir
}

// IsWindows reports whether the target belongs to the Windows family.
func (p Platform) IsWindows() bool {
	return strings.HasPrefix(p.subdir, "win-")
}

// ExeSuffix returns the executable filename suffix for the target
// (".exe" on the Windows family, empty elsewhere).
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// BinDir returns the directory under an installation prefix that holds
// executables. The Windows family installs interpreters at the prefix root.
func (p Platform) BinDir() string {
	if p.IsWindows() {
		return ""
	}
	return "bin"
}

// Binary returns the path of the named executable inside prefix, applying
// the target's suffix and bin-directory conventions.
func (p Platform) Binary(prefix, name string) string {
	return filepath.Join(prefix, p.BinDir(), name+p.ExeSuffix())
}
