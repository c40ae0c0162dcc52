package commands

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vsinha/prodplan/pkg/interfaces/api"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP with a shared reservation ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.HTTP.Addr
			}
			if strings.HasPrefix(strings.ToLower(opts.cfg.App.Env), "prod") {
				gin.SetMode(gin.ReleaseMode)
			}

			session, err := OpenSession(opts.cfg, opts.log)
			if err != nil {
				return err
			}

			var metricsHandler http.Handler
			if opts.cfg.Metrics.Enabled {
				metricsHandler = session.Metrics.Handler()
			}
			router := api.NewRouter(api.RouterConfig{
				Handler: api.NewHandler(session.Planner, session.Events, opts.log),
				Metrics: metricsHandler,
				Log:     opts.log,
			})
			return api.Serve(cmd.Context(), addr, router, opts.log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default http.addr, :8080)")
	return cmd
}
