// Package site supplies the toolchain-wide settings that build configuration
// resolution consumes but does not own: the install root and whether it is
// writable, the rc-file build root, the default upload behavior, and the
// platform subdirectory.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/condakiln/kiln/pkg/platform"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Settings is the read-only view the build-configuration resolver holds.
type Settings interface {
	// BuildRoot is the rc-file "root-dir" override for build workspaces.
	// Empty when the rc file does not set one.
	BuildRoot() string

	// RootDir is the toolchain's own install root.
	RootDir() string

	// RootWritable reports whether the install root accepts writes by the
	// current user.
	RootWritable() bool

	// Subdir is the package subdirectory for the target platform
	// (e.g. "linux-64").
	Subdir() string

	// UploadByDefault is the site-wide default for uploading packages
	// after a successful build.
	UploadByDefault() bool
}

// Static is a fixed Settings value, used by tests and by embedders that
// resolve site state through other means.
type Static struct {
	BuildRootDir   string
	InstallRoot    string
	Writable       bool
	PlatformSubdir string
	Upload         bool
}

func (s Static) BuildRoot() string     { return s.BuildRootDir }
func (s Static) RootDir() string       { return s.InstallRoot }
func (s Static) RootWritable() bool    { return s.Writable }
func (s Static) Subdir() string        { return s.PlatformSubdir }
func (s Static) UploadByDefault() bool { return s.Upload }

// rcFile is the subset of the rc document this toolchain reads.
// Unknown keys are ignored so rc files shared with other tools keep working.
type rcFile struct {
	CondaBuild struct {
		RootDir string `yaml:"root-dir"`
	} `yaml:"conda-build"`
	BinstarUpload bool `yaml:"binstar_upload"`
}

// Site is the Settings implementation backed by an rc file and a probed
// install root.
type Site struct {
	buildRoot string
	rootDir   string
	writable  bool
	subdir    string
	upload    bool
}

func (s *Site) BuildRoot() string     { return s.buildRoot }
func (s *Site) RootDir() string       { return s.rootDir }
func (s *Site) RootWritable() bool    { return s.writable }
func (s *Site) Subdir() string        { return s.subdir }
func (s *Site) UploadByDefault() bool { return s.upload }

// Load reads the rc file at rcPath (a missing file yields zero settings),
// probes rootDir for writability, and detects the platform subdirectory.
func Load(rcPath, rootDir string) (*Site, error) {
	s := &Site{
		rootDir: rootDir,
		subdir:  platform.Detect().Subdir(),
	}

	data, err := os.ReadFile(rcPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", rcPath).Msg("No rc file, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read rc file %s: %w", rcPath, err)
	default:
		var rc rcFile
		if err := yaml.Unmarshal(data, &rc); err != nil {
			return nil, fmt.Errorf("failed to parse rc file %s: %w", rcPath, err)
		}
		s.buildRoot = rc.CondaBuild.RootDir
		s.upload = rc.BinstarUpload
		log.Debug().
			Str("path", rcPath).
			Str("root_dir", s.buildRoot).
			Bool("binstar_upload", s.upload).
			Msg("Loaded rc file")
	}

	if rootDir != "" {
		s.writable = dirWritable(rootDir)
	}
	return s, nil
}

// DefaultRCPath returns the conventional rc file location (~/.condarc).
func DefaultRCPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".condarc"), nil
}

// InstallRoot returns the toolchain install root: $CONDA_ROOT when set,
// else the directory containing the running executable's parent.
func InstallRoot() string {
	if root := os.Getenv("CONDA_ROOT"); root != "" {
		return root
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(filepath.Dir(exe))
}

// dirWritable probes dir by creating and removing a temporary file.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".kiln-write-test-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
