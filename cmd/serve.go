package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/api"
	"github.com/abhisek/tango/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the card collection over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if _, err := logging.Setup(os.Stdout, cfg.Log.Level, "json"); err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		handler := api.NewRouter(st.CardRepo(), api.Options{
			WriteRate:  cfg.Server.WriteRate,
			WriteBurst: cfg.Server.WriteBurst,
		})
		if err := api.Serve(cmd.Context(), cfg.Server.Addr, handler); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr, 127.0.0.1:8080)")
}
