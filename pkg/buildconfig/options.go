package buildconfig

// Options is the set of recognized overrides for a merge. Nil fields are
// omitted settings and never disturb previously resolved state. Version
// overrides are slices so that slice-valued CLI flags can be passed through
// unchanged: an empty slice means "not overridden", a single element is the
// override, and longer slices are rejected at merge time (one configuration
// resolves one version; matrix expansion is the caller's job).
type Options struct {
	// Python is the primary interpreter version override (e.g. "3.10").
	Python []string `validate:"max=1"`

	// Perl is the Perl version override.
	Perl []string `validate:"max=1"`

	// Lua is the Lua version override.
	Lua []string `validate:"max=1"`

	// R is the R version override.
	R []string `validate:"max=1"`

	// NumPy is the NumPy version override. A value that normalizes to zero
	// resolves to "no constraint".
	NumPy []string `validate:"max=1"`

	// BuildID identifies one build invocation, typically package name plus
	// a timestamp. The build pipeline sets it before per-build paths are
	// used.
	BuildID *string

	// PrefixLength is the target length for the padded build prefix.
	PrefixLength *int `validate:"omitempty,gt=0"`

	// CRoot is the explicit build root. Setting it to the empty string
	// clears the cached value so the fallback chain runs again on next
	// access.
	CRoot *string

	// UseLongBuildPrefix selects long padded build prefixes.
	UseLongBuildPrefix *bool

	// Activate controls activating the build environment before building.
	Activate *bool

	// Upload controls uploading the package after a successful build.
	Upload *bool

	// ChannelURLs is an ordered list of extra package channels. A nil
	// slice preserves the current list; a non-nil slice replaces it.
	ChannelURLs []string

	// Dirty reuses an existing work directory instead of starting clean.
	Dirty *bool

	// IncludeRecipe bundles the recipe into the built package.
	IncludeRecipe *bool

	// KeepOldWork keeps the previous work directory around.
	KeepOldWork *bool

	// Noarch marks the package as platform-independent.
	Noarch *bool

	// NoDownloadSource disables fetching sources.
	NoDownloadSource *bool

	// OverrideChannels ignores the site channel configuration.
	OverrideChannels *bool

	// SkipExisting makes builds of already-built packages a no-op.
	SkipExisting *bool

	// Token is the upload authentication token.
	Token *string

	// User is the upload target user or organization.
	User *string

	// Verbose enables verbose build output.
	Verbose *bool
}
