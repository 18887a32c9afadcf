package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"train-search-server/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		release, _ := cmd.Flags().GetBool("release")
		if release {
			gin.SetMode(gin.ReleaseMode)
		}

		cfg, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		log.Printf("Using %s store, request timeout %s", cfg.Store.Driver, cfg.Server.RequestTimeout)
		router := server.NewRouter(s, server.Options{RequestTimeout: cfg.Server.RequestTimeout})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, cfg.Addr(), router)
	},
}

func init() {
	serveCmd.Flags().Bool("release", false, "run gin in release mode")
	rootCmd.AddCommand(serveCmd)
}
