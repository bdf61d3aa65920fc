package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condakiln/kiln/pkg/buildconfig"
	"github.com/condakiln/kiln/pkg/meta"
)

func newDirsCommand() *cobra.Command {
	var flags settingsFlags

	cmd := &cobra.Command{
		Use:   "dirs",
		Short: "Show the derived build directory layout",
		Long: `Print every directory the build pipeline derives for one build
invocation: the per-build workspace with its environments, and the shared
source caches under the build root.`,
		Example: `  # Layout for a concrete build id
  kiln dirs --build-id foo-1.0-123456 --croot /tmp/bld`,
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

			rows := []struct {
				name string
				path func() (string, error)
			}{
				{"croot", cfg.Croot},
				{"build folder", cfg.BuildFolder},
				{"build prefix", cfg.BuildPrefix},
				{"test prefix", cfg.TestPrefix},
				{"work dir", cfg.WorkDir},
				{"test dir", cfg.TestDir},
				{"broken dir", cfg.BrokenDir},
				{"packages dir", cfg.BldpkgsDir},
				{"src cache", cfg.SrcCache},
				{"git cache", cfg.GitCache},
				{"hg cache", cfg.HgCache},
				{"svn cache", cfg.SvnCache},
			}
			for _, row := range rows {
				path, err := row.path()
				if err != nil {
					return err
				}
				fmt.Printf("%-14s %s\n", row.name+":", path)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
