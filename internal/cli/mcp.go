package cli

import (
	"os/signal"
	"syscall"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/mcp"
	"github.com/jsamuelsen11/numeral-service/internal/app"
)

func mcpCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the roman_numeral tool over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			logger := root.logger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := app.NewConverterService(cfg.Converter, nil, logger)
			return mcp.NewServer(svc, root.version, logger).Serve(ctx, &gomcp.StdioTransport{})
		},
	}
}
