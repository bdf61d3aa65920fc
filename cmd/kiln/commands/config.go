package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/condakiln/kiln/pkg/buildconfig"
	"github.com/condakiln/kiln/pkg/meta"
)

func newConfigCommand() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved build configuration",
		Long: `Resolve the build configuration from flags, environment variables,
the rc file, and built-in defaults, and print the resulting versions and
directory locations.`,
		Example: `  # Defaults plus environment
  kiln config

  # Override the Python version and build root
  kiln config --python 3.10 --croot /tmp/bld`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSite()
			if err != nil {
				return err
			}

			cfg, err := buildconfig.New(st, meta.PrefixReader{}, flags.options(cmd))
			if err != nil {
				return err
			}

			log.Debug().
				Int("python", cfg.Py).
				Str("subdir", cfg.Subdir()).
				Msg("Resolved build configuration")

			croot, err := cfg.Croot()
			if err != nil {
				return err
			}
			pkgsDir, err := cfg.BldpkgsDir()
			if err != nil {
				return err
			}

			fmt.Println("CONDA_PY:", cfg.Py)
			if cfg.NumPy != 0 {
				fmt.Println("CONDA_NPY:", cfg.NumPy)
			} else {
				fmt.Println("CONDA_NPY: <unconstrained>")
			}
			fmt.Println("CONDA_PERL:", cfg.Perl)
			fmt.Println("CONDA_LUA:", cfg.Lua)
			fmt.Println("CONDA_R:", cfg.R)
			fmt.Println("subdir:", cfg.Subdir())
			fmt.Println("croot:", croot)
			fmt.Println("build packages directory:", pkgsDir)

			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
