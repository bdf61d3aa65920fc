package buildconfig

import (
	"strings"
)

// Interpreter binary locations inside the build and test prefixes. Binary
// naming goes through the platform policy; only the Windows-family Python
// needs the installed-packages query, to pick the debug interpreter when a
// debug package is linked into the prefix.

// BuildPython returns the Python interpreter path inside the build prefix.
func (c *Config) BuildPython() (string, error) {
	prefix, err := c.BuildPrefix()
	if err != nil {
		return "", err
	}
	return c.pythonBinary(prefix)
}

// TestPython returns the Python interpreter path inside the test prefix.
func (c *Config) TestPython() (string, error) {
	prefix, err := c.TestPrefix()
	if err != nil {
		return "", err
	}
	return c.pythonBinary(prefix)
}

// BuildPerl returns the Perl interpreter path inside the build prefix.
func (c *Config) BuildPerl() (string, error) {
	prefix, err := c.BuildPrefix()
	if err != nil {
		return "", err
	}
	return c.platform().Binary(prefix, "perl"), nil
}

// TestPerl returns the Perl interpreter path inside the test prefix.
func (c *Config) TestPerl() (string, error) {
	prefix, err := c.TestPrefix()
	if err != nil {
		return "", err
	}
	return c.platform().Binary(prefix, "perl"), nil
}

// BuildLua returns the Lua interpreter path inside the build prefix.
func (c *Config) BuildLua() (string, error) {
	prefix, err := c.BuildPrefix()
	if err != nil {
		return "", err
	}
	return c.platform().Binary(prefix, c.luaBinaryName()), nil
}

// TestLua returns the Lua interpreter path inside the test prefix.
func (c *Config) TestLua() (string, error) {
	prefix, err := c.TestPrefix()
	if err != nil {
		return "", err
	}
	return c.platform().Binary(prefix, c.luaBinaryName()), nil
}

// luaBinaryName returns "luajit" for the 2.x series, "lua" otherwise.
func (c *Config) luaBinaryName() string {
	if strings.HasPrefix(c.Lua, "2") {
		return "luajit"
	}
	return "lua"
}

// pythonBinary resolves the Python executable inside prefix. On the
// Windows family a linked package named "debug" switches the interpreter to
// the debug build, which carries a different binary name.
func (c *Config) pythonBinary(prefix string) (string, error) {
	p := c.platform()
	if !p.IsWindows() {
		return p.Binary(prefix, "python"), nil
	}
	name := "python"
	if c.linked != nil {
		dists, err := c.linked.Linked(prefix)
		if err != nil {
			return "", err
		}
		for _, dist := range dists {
			if distName(dist) == "debug" {
				name = "python_d"
				break
			}
		}
	}
	return p.Binary(prefix, name), nil
}

// distName extracts the package name from a "name-version-build" dist
// string.
func distName(dist string) string {
	if i := strings.Index(dist, "-"); i >= 0 {
		return dist[:i]
	}
	return dist
}
