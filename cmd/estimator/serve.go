package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/realestate-estimator/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve estimates over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(a.engine, a.logger.Named("server")).
				ListenAndServe(cmd.Context(), a.v.GetString("server.addr"))
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
