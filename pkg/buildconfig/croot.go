package buildconfig

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvBuildPath is the environment variable that overrides the build root.
const EnvBuildPath = "CONDA_BLD_PATH"

// Croot returns the build root directory, under which source caches and
// per-build work folders live. It is resolved lazily on first access and
// cached for the lifetime of the Config:
//
//  1. an explicit value (SetCroot or the CRoot override), expanded;
//  2. the CONDA_BLD_PATH environment variable, expanded;
//  3. the site rc-file build root, expanded;
//  4. <install root>/conda-bld when the install root is writable;
//  5. ~/conda-bld.
//
// It fails with an environment-unresolved error when every branch fails
// (e.g. the home directory cannot be determined); it never returns an
// empty path.
func (c *Config) Croot() (string, error) {
	if c.croot == "" {
		resolved, err := c.resolveCroot()
		if err != nil {
			return "", err
		}
		c.croot = resolved
	}
	return c.croot, nil
}

// SetCroot sets the build root explicitly. The empty string clears the
// cached value so the next Croot call re-runs the full fallback chain.
func (c *Config) SetCroot(path string) error {
	if path == "" {
		c.croot = ""
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	c.croot = expanded
	return nil
}

func (c *Config) resolveCroot() (string, error) {
	if env := os.Getenv(EnvBuildPath); env != "" {
		return expandPath(env)
	}
	if rc := c.site.BuildRoot(); rc != "" {
		return expandPath(rc)
	}
	if root := c.site.RootDir(); root != "" && c.site.RootWritable() {
		return filepath.Join(root, "conda-bld"), nil
	}
	return expandPath("~/conda-bld")
}

// expandPath resolves a leading ~ against the home directory and makes the
// result absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", NewEnvironmentUnresolvedError(
				"cannot determine home directory", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewEnvironmentUnresolvedError(
			"cannot resolve build root path "+strconv.Quote(path), err)
	}
	return abs, nil
}
