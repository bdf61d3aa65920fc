package buildconfig

import (
	"path/filepath"
)

// Derived paths are recomputed from current state on every access; only the
// croot underneath them is cached. While the build id is unset, per-build
// paths collapse onto croot itself.

// BuildFolder returns the workspace directory of this build invocation,
// holding its environments and work directories.
func (c *Config) BuildFolder() (string, error) {
	croot, err := c.Croot()
	if err != nil {
		return "", err
	}
	return filepath.Join(croot, c.buildID), nil
}

// BuildPrefix returns the install prefix used during compilation, padded
// with placeholder tokens to exactly PrefixLength characters so that paths
// embedded into binaries can later be rewritten in place. A natural path
// already at or past the target length is returned unchanged.
func (c *Config) BuildPrefix() (string, error) {
	folder, err := c.BuildFolder()
	if err != nil {
		return "", err
	}
	return padPrefix(filepath.Join(folder, "_build_env"), c.prefixLength), nil
}

// TestPrefix returns the temporary install prefix used during testing.
func (c *Config) TestPrefix() (string, error) {
	folder, err := c.BuildFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, "_test_env"), nil
}

// WorkDir returns the directory holding the extracted and patched source
// tree.
func (c *Config) WorkDir() (string, error) {
	folder, err := c.BuildFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, "work"), nil
}

// TestDir returns the directory test files are copied to and tests execute
// in.
func (c *Config) TestDir() (string, error) {
	folder, err := c.BuildFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, "test_tmp"), nil
}

// InfoDir returns the package metadata directory inside the build prefix.
func (c *Config) InfoDir() (string, error) {
	prefix, err := c.BuildPrefix()
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, "info"), nil
}

// MetaDir returns the conda-meta directory inside the build prefix.
func (c *Config) MetaDir() (string, error) {
	prefix, err := c.BuildPrefix()
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, "conda-meta"), nil
}

// BrokenDir returns the quarantine directory for failed builds.
func (c *Config) BrokenDir() (string, error) {
	croot, err := c.Croot()
	if err != nil {
		return "", err
	}
	return filepath.Join(croot, "broken"), nil
}

// BldpkgsDir returns the directory built packages are saved to: the noarch
// subdirectory for platform-independent packages, else the platform
// subdirectory.
func (c *Config) BldpkgsDir() (string, error) {
	croot, err := c.Croot()
	if err != nil {
		return "", err
	}
	if c.Noarch {
		return filepath.Join(croot, "noarch"), nil
	}
	return filepath.Join(croot, c.site.Subdir()), nil
}

// BldpkgsDirs returns every directory previously built packages might live
// in, regardless of the noarch flag.
func (c *Config) BldpkgsDirs() ([]string, error) {
	croot, err := c.Croot()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(croot, c.site.Subdir()),
		filepath.Join(croot, "noarch"),
	}, nil
}

// SrcCache returns the shared, build-independent source archive cache.
func (c *Config) SrcCache() (string, error) {
	return c.crootSub("src_cache")
}

// GitCache returns the shared git clone cache.
func (c *Config) GitCache() (string, error) {
	return c.crootSub("git_cache")
}

// HgCache returns the shared mercurial clone cache.
func (c *Config) HgCache() (string, error) {
	return c.crootSub("hg_cache")
}

// SvnCache returns the shared subversion checkout cache.
func (c *Config) SvnCache() (string, error) {
	return c.crootSub("svn_cache")
}

func (c *Config) crootSub(name string) (string, error) {
	croot, err := c.Croot()
	if err != nil {
		return "", err
	}
	return filepath.Join(croot, name), nil
}
