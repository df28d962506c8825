package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
)

// configCommand prints the default configuration, a starting point for -c.
func (c *CLI) configCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default gauge configuration as TOML",
		Long: `Print the default gauge configuration as TOML.

With -c, the given file is loaded over the defaults and the merged result is
printed instead, which shows exactly what a render will use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if path != "" {
				var err error
				if cfg, err = config.Load(path); err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return config.Encode(c.Out, cfg)
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "config file to merge over the defaults")
	return cmd
}
