package main

import (
	"fmt"
	"log"
	"os"

	"github.com/philipparndt/gosurvey/internal/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the computations over HTTP",
	Long: `Start an HTTP server with JSON endpoints:

  POST /api/circle    - both circle estimates for a point list
  POST /api/segment   - segment between two points
  POST /api/angle     - angle at a vertex
  POST /api/triangle  - right triangle solver
  GET  /ping          - health check`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) {
	r := api.NewRouter()

	log.Printf("Listening on %s", serveAddr)
	if err := r.Run(serveAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
}
