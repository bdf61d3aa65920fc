package buildconfig

import (
	"errors"
	"testing"

	"github.com/condakiln/kiln/pkg/site"
)

// clearVersionEnv blanks out every environment variable the version
// resolution consults, so tests only see what they set themselves.
func clearVersionEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONDA_PY", "CONDA_PERL", "CONDA_LUA", "CONDA_R", "CONDA_NPY",
		EnvBuildPath,
	} {
		t.Setenv(key, "")
	}
}

func testSite() site.Static {
	return site.Static{PlatformSubdir: "linux-64"}
}

func TestVersionPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		opts     Options
		wantPerl string
		wantPy   int
	}{
		{
			name:     "defaults only",
			wantPerl: DefaultPerlVersion,
			wantPy:   311,
		},
		{
			name:     "environment beats default",
			env:      map[string]string{"CONDA_PERL": "5.22.0", "CONDA_PY": "2.7"},
			wantPerl: "5.22.0",
			wantPy:   27,
		},
		{
			name:     "override beats environment",
			env:      map[string]string{"CONDA_PERL": "5.22.0", "CONDA_PY": "2.7"},
			opts:     Options{Perl: []string{"5.24.1"}, Python: []string{"3.10"}},
			wantPerl: "5.24.1",
			wantPy:   310,
		},
		{
			name:     "empty environment variable treated as unset",
			env:      map[string]string{"CONDA_PERL": ""},
			wantPerl: DefaultPerlVersion,
			wantPy:   311,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearVersionEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := New(testSite(), nil, tt.opts)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if cfg.Perl != tt.wantPerl {
				t.Errorf("Perl = %q, want %q", cfg.Perl, tt.wantPerl)
			}
			if cfg.Py != tt.wantPy {
				t.Errorf("Py = %d, want %d", cfg.Py, tt.wantPy)
			}
		})
	}
}

func TestPrimaryVersionIrregularEnvName(t *testing.T) {
	clearVersionEnv(t)
	// The python setting reads CONDA_PY, not CONDA_PYTHON.
	t.Setenv("CONDA_PYTHON", "2.7")

	cfg, err := New(testSite(), nil, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Py != 311 {
		t.Errorf("Py = %d, want default 311 (CONDA_PYTHON must be ignored)", cfg.Py)
	}
}

func TestVersionNormalization(t *testing.T) {
	tests := []struct {
		name    string
		python  string
		want    int
		wantErr bool
	}{
		{name: "plain major minor", python: "3.8", want: 38},
		{name: "double digit minor concatenates digits", python: "3.10", want: 310},
		{name: "no dot", python: "38", want: 38},
		{name: "non-numeric rejected", python: "3.8rc1", wantErr: true},
		{name: "empty rejected", python: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearVersionEnv(t)
			cfg, err := New(testSite(), nil, Options{Python: []string{tt.python}})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for python %q", tt.python)
				}
				if !errors.Is(err, &ConfigError{Class: ErrorClassInvalidConfiguration}) {
					t.Errorf("error %v is not invalid-configuration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if cfg.Py != tt.want {
				t.Errorf("Py = %d, want %d", cfg.Py, tt.want)
			}
		})
	}
}

func TestSingleElementOverrideUnwrap(t *testing.T) {
	clearVersionEnv(t)

	scalar, err := New(testSite(), nil, Options{Perl: []string{"5.24.1"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if scalar.Perl != "5.24.1" {
		t.Errorf("Perl = %q, want unwrapped element %q", scalar.Perl, "5.24.1")
	}
}

func TestMultiElementOverrideRejected(t *testing.T) {
	clearVersionEnv(t)
	_, err := New(testSite(), nil, Options{Python: []string{"3.9", "3.10"}})
	if err == nil {
		t.Fatal("expected error for multi-element version override")
	}
	if !errors.Is(err, &ConfigError{Class: ErrorClassInvalidConfiguration}) {
		t.Errorf("error %v is not invalid-configuration", err)
	}
}

func TestNumPyResolution(t *testing.T) {
	tests := []struct {
		name string
		env  string
		opts Options
		want int
	}{
		{name: "absent by default", want: 0},
		{name: "environment variable", env: "1.11", want: 111},
		{name: "override beats environment", env: "1.11", opts: Options{NumPy: []string{"1.9"}}, want: 19},
		{name: "zero means no constraint", opts: Options{NumPy: []string{"0"}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearVersionEnv(t)
			if tt.env != "" {
				t.Setenv("CONDA_NPY", tt.env)
			}
			cfg, err := New(testSite(), nil, tt.opts)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if cfg.NumPy != tt.want {
				t.Errorf("NumPy = %d, want %d", cfg.NumPy, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	clearVersionEnv(t)

	id := "pkg-1.0-1620000000"
	length := 120
	cfg, err := New(testSite(), nil, Options{
		BuildID:      &id,
		PrefixLength: &length,
		ChannelURLs:  []string{"https://example.com/channel"},
		KeepOldWork:  boolPtr(true),
		SkipExisting: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// An empty merge must not reset anything previously resolved.
	if err := cfg.SetKeys(Options{}); err != nil {
		t.Fatalf("SetKeys failed: %v", err)
	}

	if cfg.BuildID() != id {
		t.Errorf("BuildID = %q, want %q", cfg.BuildID(), id)
	}
	if cfg.PrefixLength() != length {
		t.Errorf("PrefixLength = %d, want %d", cfg.PrefixLength(), length)
	}
	if len(cfg.ChannelURLs) != 1 || cfg.ChannelURLs[0] != "https://example.com/channel" {
		t.Errorf("ChannelURLs = %v, want the previously merged list", cfg.ChannelURLs)
	}
	if !cfg.KeepOldWork {
		t.Error("KeepOldWork was reset by an empty merge")
	}
	if !cfg.SkipExisting {
		t.Error("SkipExisting was reset by an empty merge")
	}
}

func TestBooleanDefaults(t *testing.T) {
	clearVersionEnv(t)

	cfg, err := New(site.Static{PlatformSubdir: "linux-64", Upload: true}, nil, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !cfg.Activate {
		t.Error("Activate should default to true")
	}
	if !cfg.IncludeRecipe {
		t.Error("IncludeRecipe should default to true")
	}
	if !cfg.Upload {
		t.Error("Upload should default to the site upload setting")
	}
	if cfg.Noarch || cfg.Dirty || cfg.KeepOldWork || cfg.SkipExisting {
		t.Error("flags should default to false")
	}
	if cfg.PrefixLength() != DefaultPrefixLength {
		t.Errorf("PrefixLength = %d, want %d", cfg.PrefixLength(), DefaultPrefixLength)
	}
}

func TestInvalidPrefixLength(t *testing.T) {
	clearVersionEnv(t)

	zero := 0
	_, err := New(testSite(), nil, Options{PrefixLength: &zero})
	if err == nil {
		t.Fatal("expected error for zero prefix length")
	}
	if !errors.Is(err, &ConfigError{Class: ErrorClassInvalidConfiguration}) {
		t.Errorf("error %v is not invalid-configuration", err)
	}

	cfg, err := New(testSite(), nil, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := cfg.SetPrefixLength(-1); err == nil {
		t.Error("SetPrefixLength(-1) should fail")
	}
}

func TestPY3K(t *testing.T) {
	tests := []struct {
		python       string
		wantPY3K     bool
		wantMSVC2015 bool
	}{
		{python: "2.7", wantPY3K: false, wantMSVC2015: false},
		{python: "3.4", wantPY3K: true, wantMSVC2015: false},
		{python: "3.5", wantPY3K: true, wantMSVC2015: true},
		{python: "3.10", wantPY3K: true, wantMSVC2015: true},
	}

	for _, tt := range tests {
		t.Run(tt.python, func(t *testing.T) {
			clearVersionEnv(t)
			cfg, err := New(testSite(), nil, Options{Python: []string{tt.python}})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if cfg.PY3K() != tt.wantPY3K {
				t.Errorf("PY3K() = %v, want %v", cfg.PY3K(), tt.wantPY3K)
			}
			if cfg.UseMSVC2015() != tt.wantMSVC2015 {
				t.Errorf("UseMSVC2015() = %v, want %v", cfg.UseMSVC2015(), tt.wantMSVC2015)
			}
		})
	}
}

func TestMergeNilConfig(t *testing.T) {
	clearVersionEnv(t)

	cfg, err := Merge(nil, testSite(), nil, Options{Perl: []string{"5.24.1"}})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Merge(nil, ...) should construct a Config")
	}

	same, err := Merge(cfg, nil, nil, Options{})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if same != cfg {
		t.Error("Merge should return the existing Config handle")
	}
	if same.Perl != "5.24.1" {
		t.Errorf("Perl = %q, want preserved override", same.Perl)
	}
}

func TestMergeEmptyOptionsPreservesVersions(t *testing.T) {
	clearVersionEnv(t)

	cfg, err := New(testSite(), nil, Options{
		Perl:   []string{"5.24.1"},
		Python: []string{"3.10"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// A later pipeline stage with nothing to override must not re-resolve
	// version settings against the environment and defaults.
	t.Setenv("CONDA_PERL", "5.22.0")
	merged, err := Merge(cfg, nil, nil, Options{})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged != cfg {
		t.Error("Merge should return the existing Config handle")
	}
	if merged.Perl != "5.24.1" {
		t.Errorf("Perl = %q after empty merge, want preserved override %q", merged.Perl, "5.24.1")
	}
	if merged.Py != 310 {
		t.Errorf("Py = %d after empty merge, want preserved override 310", merged.Py)
	}

	// A non-empty merge still re-resolves versions, per the version
	// precedence class.
	refreshed, err := Merge(cfg, nil, nil, Options{KeepOldWork: boolPtr(true)})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if refreshed.Perl != "5.22.0" {
		t.Errorf("Perl = %q after non-empty merge, want env value %q", refreshed.Perl, "5.22.0")
	}
}

func boolPtr(b bool) *bool { return &b }
