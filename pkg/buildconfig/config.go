// Package buildconfig resolves the runtime settings of one build invocation:
// interpreter versions merged from overrides, environment variables, and
// defaults, plus the derived on-disk directory layout rooted at the build
// root ("croot").
//
// A Config is a single mutable value shared by reference with every
// collaborator that needs current settings. Collaborators must re-read
// fields on demand rather than copy values out, because later merges mutate
// the Config in place.
package buildconfig

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/condakiln/kiln/pkg/platform"
	"github.com/condakiln/kiln/pkg/site"
)

// Built-in version defaults applied when neither an override nor the
// corresponding environment variable is set.
const (
	DefaultPythonVersion = "3.11"
	DefaultPerlVersion   = "5.18.2"
	DefaultLuaVersion    = "5.2"
	DefaultRVersion      = "3.2.2"
)

// DefaultPrefixLength is the target length of the padded build prefix.
const DefaultPrefixLength = 80

var validate = validator.New()

// LinkedPackages lists the packages installed into a prefix. Dist names
// follow the "name-version-build" convention.
type LinkedPackages interface {
	Linked(prefix string) ([]string, error)
}

// Config holds the resolved settings for one build invocation. Construct
// with New, merge further overrides with SetKeys, and discard at the end of
// the invocation; it holds no background resources.
type Config struct {
	site   site.Settings
	linked LinkedPackages

	// Perl, Lua, and R are resolved version strings.
	Perl string
	Lua  string
	R    string

	// Py is the primary interpreter version normalized to its
	// concatenated digits ("3.10" -> 310).
	Py int

	// NumPy is the numeric-extension version in the same normalized form;
	// zero means no constraint.
	NumPy int

	buildID      string
	prefixLength int
	croot        string

	// UseLongBuildPrefix selects long padded build prefixes.
	UseLongBuildPrefix bool

	// Behavioral flags. These carry no environment-variable fallback:
	// explicit override, else whatever a previous merge resolved, else the
	// built-in default.
	Activate         bool
	Upload           bool
	ChannelURLs      []string
	Dirty            bool
	IncludeRecipe    bool
	KeepOldWork      bool
	Noarch           bool
	NoDownloadSource bool
	OverrideChannels bool
	SkipExisting     bool
	Token            string
	User             string
	Verbose          bool
}

// New creates a Config wired to the given site settings and
// installed-packages query, then merges opts. A nil st behaves as empty
// site settings; a nil linked behaves as "no packages installed".
func New(st site.Settings, linked LinkedPackages, opts Options) (*Config, error) {
	if st == nil {
		st = site.Static{}
	}
	c := &Config{
		site:          st,
		linked:        linked,
		prefixLength:  DefaultPrefixLength,
		Activate:      true,
		IncludeRecipe: true,
		Upload:        st.UploadByDefault(),
	}
	if err := c.SetKeys(opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge applies opts to cfg, creating a fresh Config when cfg is nil.
// Collaborators that may or may not have been handed a Config use this to
// obtain one without clobbering earlier resolution: a zero opts value skips
// the merge entirely, so version settings already resolved on cfg are not
// re-resolved against the environment and defaults.
func Merge(cfg *Config, st site.Settings, linked LinkedPackages, opts Options) (*Config, error) {
	if cfg == nil {
		return New(st, linked, opts)
	}
	if reflect.ValueOf(opts).IsZero() {
		return cfg, nil
	}
	if err := cfg.SetKeys(opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetKeys merges opts into the current state. Version settings resolve
// override -> environment variable -> default on every call; all other
// settings keep their previously resolved value when omitted, so repeated
// merges are idempotent and non-destructive.
func (c *Config) SetKeys(opts Options) error {
	if err := validate.Struct(opts); err != nil {
		return NewInvalidConfigurationError("options", "invalid overrides", err)
	}

	c.Perl = resolveVersion("perl", opts.Perl, DefaultPerlVersion)
	c.Lua = resolveVersion("lua", opts.Lua, DefaultLuaVersion)
	c.R = resolveVersion("r", opts.R, DefaultRVersion)

	py, err := normalizeVersion("python", resolveVersion("python", opts.Python, DefaultPythonVersion))
	if err != nil {
		return err
	}
	c.Py = py

	npy, err := resolveNumPy(opts.NumPy)
	if err != nil {
		return err
	}
	c.NumPy = npy

	if opts.BuildID != nil {
		c.buildID = *opts.BuildID
	}
	if opts.PrefixLength != nil {
		c.prefixLength = *opts.PrefixLength
	}
	if opts.CRoot != nil {
		if err := c.SetCroot(*opts.CRoot); err != nil {
			return err
		}
	}
	if opts.UseLongBuildPrefix != nil {
		c.UseLongBuildPrefix = *opts.UseLongBuildPrefix
	}
	if opts.Activate != nil {
		c.Activate = *opts.Activate
	}
	if opts.Upload != nil {
		c.Upload = *opts.Upload
	}
	if opts.ChannelURLs != nil {
		c.ChannelURLs = opts.ChannelURLs
	}
	if opts.Dirty != nil {
		c.Dirty = *opts.Dirty
	}
	if opts.IncludeRecipe != nil {
		c.IncludeRecipe = *opts.IncludeRecipe
	}
	if opts.KeepOldWork != nil {
		c.KeepOldWork = *opts.KeepOldWork
	}
	if opts.Noarch != nil {
		c.Noarch = *opts.Noarch
	}
	if opts.NoDownloadSource != nil {
		c.NoDownloadSource = *opts.NoDownloadSource
	}
	if opts.OverrideChannels != nil {
		c.OverrideChannels = *opts.OverrideChannels
	}
	if opts.SkipExisting != nil {
		c.SkipExisting = *opts.SkipExisting
	}
	if opts.Token != nil {
		c.Token = *opts.Token
	}
	if opts.User != nil {
		c.User = *opts.User
	}
	if opts.Verbose != nil {
		c.Verbose = *opts.Verbose
	}
	return nil
}

// BuildID returns the identifier of this build invocation. Empty until the
// build pipeline sets it; per-build paths degrade to croot itself while it
// is unset.
func (c *Config) BuildID() string {
	return c.buildID
}

// SetBuildID sets the build invocation identifier.
func (c *Config) SetBuildID(id string) {
	c.buildID = id
}

// PrefixLength returns the target length of the padded build prefix.
func (c *Config) PrefixLength() int {
	return c.prefixLength
}

// SetPrefixLength sets the target build prefix length.
func (c *Config) SetPrefixLength(length int) error {
	if length <= 0 {
		return NewInvalidConfigurationError("prefix_length",
			"prefix length must be positive", nil)
	}
	c.prefixLength = length
	return nil
}

// Subdir returns the package subdirectory for the target platform.
func (c *Config) Subdir() string {
	return c.site.Subdir()
}

// PY3K reports whether the resolved primary interpreter is a Python 3
// series.
func (c *Config) PY3K() bool {
	return c.Py >= 30
}

// UseMSVC2015 reports whether the resolved Python version switched to the
// MSVC 2015 compiler toolchain (3.5 and later).
func (c *Config) UseMSVC2015() bool {
	return c.Py >= 35
}

func (c *Config) platform() platform.Platform {
	return platform.FromSubdir(c.site.Subdir())
}

// resolveVersion applies the version precedence: a non-empty override wins;
// a single-element slice is unwrapped to its element first. Otherwise the
// language's environment variable applies when set and non-empty, else the
// built-in default. The primary language's variable uses the historical
// abbreviated name CONDA_PY rather than CONDA_PYTHON.
func resolveVersion(lang string, override []string, def string) string {
	if len(override) == 1 && override[0] != "" {
		return override[0]
	}
	if lang == "python" {
		lang = "py"
	}
	if v := os.Getenv("CONDA_" + strings.ToUpper(lang)); v != "" {
		return v
	}
	return def
}

// normalizeVersion strips dots and parses the remaining digits as an
// integer, so "3.10" becomes 310. The digit concatenation is a historical
// wire format shared with recipe selectors; version comparison code must
// treat it as opaque digits, not a number with positional meaning.
func normalizeVersion(setting, version string) (int, error) {
	digits := strings.ReplaceAll(version, ".", "")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, NewInvalidConfigurationError(setting,
			"version must contain only digits and dots, got "+strconv.Quote(version), err)
	}
	return n, nil
}

// resolveNumPy resolves the NumPy constraint: override, else CONDA_NPY,
// else absent. A value normalizing to zero also means absent.
func resolveNumPy(override []string) (int, error) {
	var version string
	if len(override) == 1 {
		version = override[0]
	}
	if version == "" {
		version = os.Getenv("CONDA_NPY")
	}
	if version == "" {
		return 0, nil
	}
	return normalizeVersion("numpy", version)
}
