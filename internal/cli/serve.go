package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/cubeface/internal/server"
	"github.com/ironsheep/cubeface/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run cubeface as an MCP server speaking JSON-RPC 2.0 over stdin/stdout,
one request per line. Configure it in your MCP client; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

			detector, err := newDetector(opts, logger)
			if err != nil {
				return err
			}

			logger.Debug("starting MCP server", "version", version.Version,
				"build_time", version.BuildTime, "commit", version.GitCommit)

			srv := server.New(detector, logger.Named("mcp"), version.Version)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
