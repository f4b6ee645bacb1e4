package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/phanxgames/folio/internal/preview"
	"github.com/spf13/cobra"
)

func newServeCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTML preview of the portfolio and PNG renders of its animations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := st.portfolio()
			if err != nil {
				return err
			}
			if !st.cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}
			s, err := preview.New(p, preview.Options{
				Serve:  st.cfg.Serve,
				Seed:   st.cfg.Seed,
				Logger: st.log,
			})
			if err != nil {
				return err
			}
			return s.ListenAndServe(cmd.Context())
		},
	}
	f := cmd.Flags()
	f.String("addr", "127.0.0.1:8080", "listen address")
	f.Float64("rate-limit", 20, "canvas renders per second")
	f.Int("burst", 40, "canvas render burst")
	return cmd
}
