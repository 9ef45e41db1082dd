package main

import (
	"github.com/spf13/cobra"
	"github.com/warp/charge-engine/config"
)

type rootOptions struct {
	envFiles []string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "chargectl",
		Short:        "Validate charge definitions",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file(s) to load before the environment")

	cmd.AddCommand(newServeCommand(opts), newCheckCommand())
	return cmd
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.envFiles...)
}
