package commands

import (
	"github.com/spf13/cobra"

	"github.com/condakiln/kiln/pkg/buildconfig"
	"github.com/condakiln/kiln/pkg/site"
)

// settingsFlags collects the override flags shared by the config and dirs
// commands. Flags the user did not touch must stay out of the Options value
// so that merge precedence sees them as omitted, hence the Changed checks.
type settingsFlags struct {
	python []string
	perl   []string
	lua    []string
	r      []string
	numpy  []string

	croot        string
	buildID      string
	prefixLength int
	channels     []string

	noarch       bool
	upload       bool
	activate     bool
	dirty        bool
	keepOldWork  bool
	skipExisting bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.python, "python", nil, "Python version (e.g. 3.10)")
	flags.StringSliceVar(&f.perl, "perl", nil, "Perl version")
	flags.StringSliceVar(&f.lua, "lua", nil, "Lua version")
	flags.StringSliceVar(&f.r, "r", nil, "R version")
	flags.StringSliceVar(&f.numpy, "numpy", nil, "NumPy version constraint")
	flags.StringVar(&f.croot, "croot", "", "build root directory")
	flags.StringVar(&f.buildID, "build-id", "", "build invocation id")
	flags.IntVar(&f.prefixLength, "prefix-length", buildconfig.DefaultPrefixLength,
		"padded build prefix length")
	flags.StringSliceVar(&f.channels, "channel", nil, "extra package channel URL")
	flags.BoolVar(&f.noarch, "noarch", false, "treat the package as platform-independent")
	flags.BoolVar(&f.upload, "upload", false, "upload the package after a successful build")
	flags.BoolVar(&f.activate, "activate", true, "activate the build environment before building")
	flags.BoolVar(&f.dirty, "dirty", false, "reuse the existing work directory")
	flags.BoolVar(&f.keepOldWork, "keep-old-work", false, "keep the previous work directory")
	flags.BoolVar(&f.skipExisting, "skip-existing", false, "skip packages already built")
}

// options converts the touched flags into a merge Options value.
func (f *settingsFlags) options(cmd *cobra.Command) buildconfig.Options {
	opts := buildconfig.Options{
		Python: f.python,
		Perl:   f.perl,
		Lua:    f.lua,
		R:      f.r,
		NumPy:  f.numpy,
	}
	flags := cmd.Flags()
	if flags.Changed("croot") {
		opts.CRoot = &f.croot
	}
	if flags.Changed("build-id") {
		opts.BuildID = &f.buildID
	}
	if flags.Changed("prefix-length") {
		opts.PrefixLength = &f.prefixLength
	}
	if flags.Changed("channel") {
		opts.ChannelURLs = f.channels
	}
	if flags.Changed("noarch") {
		opts.Noarch = &f.noarch
	}
	if flags.Changed("upload") {
		opts.Upload = &f.upload
	}
	if flags.Changed("activate") {
		opts.Activate = &f.activate
	}
	if flags.Changed("dirty") {
		opts.Dirty = &f.dirty
	}
	if flags.Changed("keep-old-work") {
		opts.KeepOldWork = &f.keepOldWork
	}
	if flags.Changed("skip-existing") {
		opts.SkipExisting = &f.skipExisting
	}
	if verbose {
		v := true
		opts.Verbose = &v
	}
	return opts
}

// loadSite resolves the rc path and builds the site settings collaborator.
func loadSite() (*site.Site, error) {
	path := rcPath
	if path == "" {
		defaultPath, err := site.DefaultRCPath()
		if err == nil {
			path = defaultPath
		}
	}
	return site.Load(path, site.InstallRoot())
}
