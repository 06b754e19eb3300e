package cmd

import (
	"github.com/spf13/cobra"

	"moviehub-cli/demo"
)

func newServeCmd(env *runtimeEnv) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local MovieHub demo site",
		Long:  `Serves an in-memory MovieHub API with sample movies and shows, for trying the client without the real site.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = env.cfg.Serve.Addr
			}
			logger := stderrLogger(env.cfg, cmd.ErrOrStderr())
			return demo.NewServer(logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default MOVIEHUB_SERVE_ADDR or :5000)")
	return cmd
}
