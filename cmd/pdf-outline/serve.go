package main

import (
	"github.com/a3tai/pdf-outline/internal/api"
	"github.com/a3tai/pdf-outline/internal/mcp"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve outlines over MCP stdio (--mode=stdio) or HTTP (--mode=http)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if a.cfg.IsHTTPMode() {
				return api.NewServer(a.svc, a.log, a.cfg.Version).ListenAndServe(cmd.Context(), a.cfg.Address())
			}

			server, err := mcp.NewServer(a.cfg, a.svc, a.log)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}
}
